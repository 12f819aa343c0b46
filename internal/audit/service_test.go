package audit

import (
	"context"
	"testing"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

func TestBuildLogMarshalsSnapshots(t *testing.T) {
	l := buildLog(LogOptions{
		EntityType: "order",
		EntityID:   "ORD-001",
		Action:     models.AuditActionUpdate,
		After:      map[string]string{"status": "preparing"},
	})
	if l.BeforeData != "null" {
		t.Fatalf("expected null before data, got %q", l.BeforeData)
	}
	if l.AfterData != `{"status":"preparing"}` {
		t.Fatalf("unexpected after data %q", l.AfterData)
	}
}

func TestMemoryRecorder(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRecorder(0)

	writes := []LogOptions{
		{SessionID: "s1", EntityType: "order", EntityID: "ORD-001", Action: models.AuditActionCreate},
		{SessionID: "s1", EntityType: "order", EntityID: "ORD-001", Action: models.AuditActionUpdate},
		{SessionID: "s1", EntityType: "stock_item", EntityID: "STK-003", Action: models.AuditActionUpdate},
		{SessionID: "s2", EntityType: "order", EntityID: "ORD-001", Action: models.AuditActionCreate},
	}
	for _, w := range writes {
		if err := r.WriteLog(ctx, w); err != nil {
			t.Fatalf("WriteLog error: %v", err)
		}
	}

	logs, err := r.List(ctx, Filter{SessionID: "s1", EntityType: "order"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(logs) != 2 || logs[0].Action != models.AuditActionUpdate {
		t.Fatalf("expected newest first for s1 orders, got %+v", logs)
	}

	logs, _ = r.List(ctx, Filter{SessionID: "s1", Limit: 1})
	if len(logs) != 1 || logs[0].EntityID != "STK-003" {
		t.Fatalf("unexpected limited list %+v", logs)
	}
}

func TestMemoryRecorderDropsOldestPastLimit(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRecorder(3)

	for _, id := range []string{"ORD-001", "ORD-002", "ORD-003", "ORD-004", "ORD-005"} {
		if err := r.WriteLog(ctx, LogOptions{SessionID: "s1", EntityType: "order", EntityID: id, Action: models.AuditActionCreate}); err != nil {
			t.Fatalf("WriteLog error: %v", err)
		}
	}

	logs, _ := r.List(ctx, Filter{})
	if len(logs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(logs))
	}
	if logs[0].EntityID != "ORD-005" || logs[2].EntityID != "ORD-003" {
		t.Fatalf("expected the newest three, got %+v", logs)
	}
	if logs[0].ID != 5 {
		t.Fatalf("ids must keep counting after trimming, got %d", logs[0].ID)
	}
}

func TestMemoryRecorderForget(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRecorder(0)

	for _, sid := range []string{"s1", "s2", "s1"} {
		_ = r.WriteLog(ctx, LogOptions{SessionID: sid, EntityType: "cart", EntityID: "m1", Action: models.AuditActionCreate})
	}

	if n := r.Forget("s1"); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if logs, _ := r.List(ctx, Filter{SessionID: "s1"}); len(logs) != 0 {
		t.Fatalf("s1 entries survived: %+v", logs)
	}
	if logs, _ := r.List(ctx, Filter{SessionID: "s2"}); len(logs) != 1 {
		t.Fatalf("s2 entries lost: %+v", logs)
	}
}
