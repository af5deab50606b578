package publish

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/events"
	"git.home.luguber.info/inful/sitebuilder/internal/store"
)

func setupWorkflow(t *testing.T) (*Workflow, *store.MockStore, *MockProvisioner, *events.RecordingPublisher) {
	t.Helper()
	st := store.NewMockStore()
	prov := NewMockProvisioner()
	pub := &events.RecordingPublisher{}
	w := NewWorkflow(st, prov, WithPublisher(pub))

	require.NoError(t, st.CreateWebsite(context.Background(), &store.Website{
		ID: "w1", OwnerID: "o1", Name: "Blue Sky Cleaning",
	}))
	return w, st, prov, pub
}

func TestPublishSubdomain(t *testing.T) {
	w, _, prov, pub := setupWorkflow(t)

	site, err := w.PublishSubdomain(context.Background(), "w1")
	require.NoError(t, err)

	assert.Equal(t, store.StatusPublished, site.Status)
	assert.Equal(t, "blue-sky-cleaning", site.Slug)
	assert.Empty(t, site.Domain)
	assert.Empty(t, prov.RegisterCalls, "subdomain publish never touches the provisioner")

	require.Len(t, pub.Published, 1)
	assert.Equal(t, "blue-sky-cleaning", pub.Published[0].Address)
}

func TestPublishSubdomainClearsPriorDomain(t *testing.T) {
	w, st, _, _ := setupWorkflow(t)
	ctx := context.Background()

	domain := "example.com"
	require.NoError(t, st.UpdateWebsite(ctx, "w1", store.WebsiteUpdate{
		Status: store.StatusPublished, Domain: &domain,
	}))

	site, err := w.PublishSubdomain(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "blue-sky-cleaning", site.Slug)
	assert.Empty(t, site.Domain)
}

func TestPublishCustomDomain(t *testing.T) {
	w, _, prov, pub := setupWorkflow(t)

	site, err := w.PublishCustomDomain(context.Background(), "w1", "Example.COM")
	require.NoError(t, err)

	assert.Equal(t, store.StatusPublished, site.Status)
	assert.Equal(t, "example.com", site.Domain)
	assert.Empty(t, site.Slug)
	assert.True(t, prov.IsRegistered("example.com"))

	require.Len(t, pub.Published, 1)
	assert.Equal(t, "example.com", pub.Published[0].Address)
}

func TestPublishCustomDomainProvisioningFailure(t *testing.T) {
	w, _, prov, pub := setupWorkflow(t)
	cause := fmt.Errorf("dns zone quota exceeded")
	prov.FailRegister = cause

	_, err := w.PublishCustomDomain(context.Background(), "w1", "example.com")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDomainProvisioningFailed))
	// the collaborator's error is surfaced verbatim
	assert.ErrorIs(t, err, cause)

	// no partial state was written
	site, err2 := w.getWebsite(context.Background(), "w1")
	require.NoError(t, err2)
	assert.Equal(t, store.StatusDraft, site.Status)
	assert.Empty(t, site.Domain)
	assert.Empty(t, site.Slug)
	assert.Empty(t, pub.Published)
}

func TestPublishCustomDomainInvalidNeverCallsProvisioner(t *testing.T) {
	w, _, prov, _ := setupWorkflow(t)

	_, err := w.PublishCustomDomain(context.Background(), "w1", "not a domain")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidDomainFormat))
	assert.Empty(t, prov.RegisterCalls)

	_, err = w.PublishCustomDomain(context.Background(), "w1", "shop.internal")
	assert.True(t, errors.IsCode(err, errors.CodeReservedDomain))
	assert.Empty(t, prov.RegisterCalls)
}

func TestPublishPersistFailureAfterProvisioning(t *testing.T) {
	w, st, _, pub := setupWorkflow(t)
	st.FailUpdateWebsite = fmt.Errorf("write rejected")

	_, err := w.PublishCustomDomain(context.Background(), "w1", "example.com")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodePersistenceWriteFailed))
	assert.True(t, errors.IsRetryable(err))
	assert.Empty(t, pub.Published)
}

func TestUnpublishWithDomain(t *testing.T) {
	w, _, prov, pub := setupWorkflow(t)
	ctx := context.Background()

	_, err := w.PublishCustomDomain(ctx, "w1", "example.com")
	require.NoError(t, err)

	site, err := w.Unpublish(ctx, "w1")
	require.NoError(t, err)

	assert.Equal(t, store.StatusDraft, site.Status)
	assert.Empty(t, site.Domain)
	assert.Empty(t, site.Slug)
	assert.False(t, prov.IsRegistered("example.com"))
	assert.Len(t, pub.Unpublished, 1)
}

func TestUnpublishDeregistrationFailureDoesNotBlock(t *testing.T) {
	w, _, prov, _ := setupWorkflow(t)
	ctx := context.Background()

	_, err := w.PublishCustomDomain(ctx, "w1", "example.com")
	require.NoError(t, err)

	prov.FailDeregister = fmt.Errorf("provisioner unreachable")
	site, err := w.Unpublish(ctx, "w1")
	require.NoError(t, err, "deregistration is best-effort")
	assert.Equal(t, store.StatusDraft, site.Status)
	assert.Empty(t, site.Domain)
}

func TestUnpublishDraftIsNoop(t *testing.T) {
	w, st, prov, _ := setupWorkflow(t)

	site, err := w.Unpublish(context.Background(), "w1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusDraft, site.Status)
	assert.Empty(t, prov.DeregisterCalls)
	assert.Equal(t, 0, st.WebsiteWrites)
}

func TestPublishBackfillsContactFromOwnerProfile(t *testing.T) {
	w, st, _, _ := setupWorkflow(t)
	ctx := context.Background()

	require.NoError(t, st.PutOwnerProfile(ctx, &store.OwnerProfile{
		ID: "o1", Email: "owner@example.com", Phone: "555-0101",
	}))

	site, err := w.PublishSubdomain(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", site.ContactEmail)
	assert.Equal(t, "555-0101", site.ContactPhone)
	// status change and backfill land in the same write
	assert.Equal(t, 1, st.WebsiteWrites)
}

func TestPublishKeepsExistingContact(t *testing.T) {
	w, st, _, _ := setupWorkflow(t)
	ctx := context.Background()

	email := "site@example.com"
	require.NoError(t, st.UpdateWebsite(ctx, "w1", store.WebsiteUpdate{ContactEmail: &email}))
	require.NoError(t, st.PutOwnerProfile(ctx, &store.OwnerProfile{
		ID: "o1", Email: "owner@example.com", Phone: "555-0101",
	}))

	site, err := w.PublishSubdomain(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "site@example.com", site.ContactEmail, "existing value wins over backfill")
	assert.Equal(t, "555-0101", site.ContactPhone)
}

func TestPublishMissingWebsite(t *testing.T) {
	w, _, _, _ := setupWorkflow(t)
	_, err := w.PublishSubdomain(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))
}

func TestRepublishIsIdempotent(t *testing.T) {
	w, _, prov, _ := setupWorkflow(t)
	ctx := context.Background()

	_, err := w.PublishCustomDomain(ctx, "w1", "example.com")
	require.NoError(t, err)
	// registering an already-registered domain is not an error
	site, err := w.PublishCustomDomain(ctx, "w1", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", site.Domain)
	assert.Len(t, prov.RegisterCalls, 2)
}
