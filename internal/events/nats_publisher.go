package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// NATSPublisher publishes change notifications to a NATS server.
type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to NATS and returns a publisher.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("sitebuilder"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	slog.Info("NATS publisher initialized", "url", url)
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) publish(subject string, n Notification) {
	n.At = time.Now().UTC()
	payload, err := json.Marshal(n)
	if err != nil {
		slog.Warn("marshal notification failed", "subject", subject, logfields.Error(err))
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		slog.Warn("publish notification failed", "subject", subject, logfields.Error(err))
	}
}

func (p *NATSPublisher) PageSaved(_ context.Context, websiteID, pageID string) {
	p.publish(SubjectPageSaved, Notification{WebsiteID: websiteID, PageID: pageID})
}

func (p *NATSPublisher) SitePublished(_ context.Context, websiteID, address string) {
	p.publish(SubjectSitePublished, Notification{WebsiteID: websiteID, Address: address})
}

func (p *NATSPublisher) SiteUnpublished(_ context.Context, websiteID string) {
	p.publish(SubjectSiteUnpublished, Notification{WebsiteID: websiteID})
}

func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
