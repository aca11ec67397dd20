package internal

import (
	"showtimer/internal/models"
	"showtimer/internal/persistence"
	"showtimer/internal/services"
)

// Inspector reads the durable snapshot and reports every variant as it would
// be shown right now. It never writes the snapshot back.
type Inspector struct {
	store   *persistence.Store
	service services.TimerServiceInterface
}

func NewInspector(store *persistence.Store, service services.TimerServiceInterface) *Inspector {
	return &Inspector{store: store, service: service}
}

func (i *Inspector) Views() ([]services.TimerView, error) {
	i.service.Restore(i.store.Load())
	defer i.store.Close()
	defer i.service.Close()

	views := make([]services.TimerView, 0, len(models.Variants))
	for _, variant := range models.Variants {
		view, err := i.service.View(variant)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (i *Inspector) Path() string {
	return i.store.Path()
}
