package queries

import (
	"context"

	"orderservice/internal/core/domain/services"
	"orderservice/internal/core/ports"
)

// TrackOrderQueryHandler projects stored orders into tracking views.
//
// Example:
//
//	handler := NewTrackOrderQueryHandler(store, services.NewTrackingViewBuilder())
//	query, _ := NewTrackOrderQuery("ORD-000042")
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s is %s at %s\n", view.OrderID, view.Status, view.CurrentLocation)
type TrackOrderQueryHandler struct {
	reader  ports.OrderReader
	builder services.TrackingViewBuilder
}

// NewTrackOrderQueryHandler creates a handler that projects stored orders with builder.
func NewTrackOrderQueryHandler(reader ports.OrderReader, builder services.TrackingViewBuilder) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{reader: reader, builder: builder}
}

// Handle returns the tracking view or errs.ErrObjectNotFound.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (services.TrackingView, error) {
	if err := query.Validate(); err != nil {
		return services.TrackingView{}, err
	}

	id, err := parseOrderID(query.OrderID())
	if err != nil {
		return services.TrackingView{}, err
	}

	o, err := h.reader.Get(ctx, id)
	if err != nil {
		return services.TrackingView{}, err
	}

	return h.builder.Build(o), nil
}
