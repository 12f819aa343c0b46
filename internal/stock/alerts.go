package stock

import "github.com/JawwadIrshad/Resturant-App/internal/models"

func (l *Ledger) Alerts() []models.StockAlert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.StockAlert(nil), l.alerts...)
}

func (l *Ledger) UnreadAlerts() []models.StockAlert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []models.StockAlert
	for _, a := range l.alerts {
		if !a.IsRead {
			out = append(out, a)
		}
	}
	return out
}

func (l *Ledger) MarkAlertAsRead(alertID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.alerts {
		if l.alerts[i].ID == alertID {
			l.alerts[i].IsRead = true
			return nil
		}
	}
	return ErrAlertNotFound
}

func (l *Ledger) ClearAlerts() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.alerts = nil
}

// RefreshAlerts rebuilds the feed from current quantities. Alerts that
// survive keep their read flag and creation time.
func (l *Ledger) RefreshAlerts() []models.StockAlert {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := make(map[string]models.StockAlert, len(l.alerts))
	for _, a := range l.alerts {
		prev[a.ID] = a
	}
	fresh := generateAlerts(l.items, l.now())
	for i, a := range fresh {
		if old, ok := prev[a.ID]; ok {
			fresh[i].IsRead = old.IsRead
			fresh[i].CreatedAt = old.CreatedAt
		}
	}
	l.alerts = fresh
	return append([]models.StockAlert(nil), l.alerts...)
}

func (l *Ledger) dropAlerts(itemID string) {
	kept := l.alerts[:0]
	for _, a := range l.alerts {
		if a.ItemID != itemID {
			kept = append(kept, a)
		}
	}
	l.alerts = kept
}
