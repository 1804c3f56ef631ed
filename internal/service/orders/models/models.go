package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
)

// UpdateStatusRequest запрос на смену статуса заказа владельцем прачечной
type UpdateStatusRequest struct {
	UserID      int64  `json:"-"`
	OrderStatus string `json:"order_status" validate:"required,oneof=picked delivered"`
}

// OrderDetailResponse позиция заказа
type OrderDetailResponse struct {
	ID                int64           `json:"id"`
	ItemID            int64           `json:"item_id"`
	WashCategoryID    int64           `json:"wash_category_id"`
	Quantity          int             `json:"quantity"`
	ProductPrice      decimal.Decimal `json:"product_price"`
	WashCategoryPrice decimal.Decimal `json:"wash_category_price"`
	SubtotalPrice     decimal.Decimal `json:"subtotal_price"`
}

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID                int64                 `json:"id"`
	UserID            int64                 `json:"user_id"`
	PickupBookingID   int64                 `json:"pickup_booking_id"`
	DeliveryBookingID int64                 `json:"delivery_booking_id"`
	TotalPrice        decimal.Decimal       `json:"total_price"`
	OrderStatus       string                `json:"order_status"`
	OrderDetails      []OrderDetailResponse `json:"order_details,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	resp := &OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		PickupBookingID:   o.PickupBookingID,
		DeliveryBookingID: o.DeliveryBookingID,
		TotalPrice:        o.TotalPrice,
		OrderStatus:       string(o.Status),
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}

	if len(o.Details) > 0 {
		resp.OrderDetails = make([]OrderDetailResponse, len(o.Details))
		for i, d := range o.Details {
			resp.OrderDetails[i] = OrderDetailResponse{
				ID:                d.ID,
				ItemID:            d.ItemID,
				WashCategoryID:    d.WashCategoryID,
				Quantity:          d.Quantity,
				ProductPrice:      d.ProductPrice,
				WashCategoryPrice: d.WashCategoryPrice,
				SubtotalPrice:     d.SubtotalPrice,
			}
		}
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
	}

	for _, order := range orders {
		if orderResp := FromDomainOrder(order); orderResp != nil {
			resp.Orders = append(resp.Orders, *orderResp)
		}
	}

	return resp
}
