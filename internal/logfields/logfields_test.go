package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrKeys(t *testing.T) {
	assert.Equal(t, KeyWebsiteID, WebsiteID("w1").Key)
	assert.Equal(t, KeyPageID, PageID("p1").Key)
	assert.Equal(t, KeyIndex, Index(3).Key)
	assert.Equal(t, KeyDomain, Domain("example.com").Key)
}

func TestErrorAttr(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
