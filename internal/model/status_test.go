package model

import "testing"

func TestStatusCatalogLabel(t *testing.T) {
	c := NewStatusCatalog([]Status{
		{ID: 2, Name: "Approved"},
		{ID: 0, Name: "Ignored"},
		{ID: 99, Name: ""},
	})

	if got, ok := c.Label(2); !ok || got != "Approved" {
		t.Errorf("Label(2) = %q, %v", got, ok)
	}
	if _, ok := c.Label(99); ok {
		t.Error("empty-named status should be skipped")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 status, got %d", c.Len())
	}

	var nilCatalog *StatusCatalog
	if _, ok := nilCatalog.Label(2); ok {
		t.Error("nil catalog should know nothing")
	}
}

func TestDefaultStatusCatalog(t *testing.T) {
	c := DefaultStatusCatalog()
	for _, id := range []int64{StatusApproved, StatusCancelled, StatusReadyToDeliver, StatusInTransit, StatusDelivered, StatusPaid, StatusForReceiving} {
		if _, ok := c.Label(id); !ok {
			t.Errorf("default catalog missing status %d", id)
		}
	}
}
