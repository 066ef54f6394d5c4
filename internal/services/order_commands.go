package services

import (
	"context"
	"errors"

	"bookbound/internal/api"
	"bookbound/internal/domain"
)

var (
	ErrNothingToReceive = errors.New("no shipment is awaiting receipt")
	ErrShipmentRequired = errors.New("order has several shipments in transit; pick one")
)

// OrderCommands are the thin pay/cancel/receive wrappers. Eligibility (is
// the order still unpaid, still cancellable) is enforced by the backend; the
// client only decides which buttons to show from the last-known status.
type OrderCommands struct {
	API *api.Client
}

func NewOrderCommands(client *api.Client) *OrderCommands {
	return &OrderCommands{API: client}
}

func (s *OrderCommands) Pay(ctx context.Context, orderID int64) error {
	return s.API.PayOrder(ctx, orderID)
}

func (s *OrderCommands) Cancel(ctx context.Context, orderID int64) error {
	return s.API.CancelOrder(ctx, orderID)
}

// Receive confirms receipt of one shipment. shipmentID 0 asks for automatic
// selection, which only succeeds when exactly one shipment is receivable;
// split-shipment orders must name the shipment explicitly.
func (s *OrderCommands) Receive(ctx context.Context, orderID, shipmentID int64) error {
	if shipmentID == 0 {
		detail, err := s.API.OrderDetail(ctx, orderID)
		if err != nil {
			return err
		}
		var receivable []domain.Shipment
		for _, sh := range detail.Shipments {
			if sh.Receivable() {
				receivable = append(receivable, sh)
			}
		}
		switch len(receivable) {
		case 0:
			return ErrNothingToReceive
		case 1:
			shipmentID = receivable[0].ShipmentID
		default:
			return ErrShipmentRequired
		}
	}
	return s.API.ReceiveShipment(ctx, orderID, shipmentID)
}
