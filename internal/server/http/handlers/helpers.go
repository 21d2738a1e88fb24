package handlers

import (
	"github.com/campus-canteen/canteen/internal/domain/model"
	"github.com/campus-canteen/canteen/internal/server/http/dto"
)

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{Name: item.Name, Price: item.Price, Qty: item.Qty})
	}
	return dto.OrderResponse{
		SessionID:         order.SessionID,
		Token:             order.Token,
		Status:            string(order.Status),
		Items:             items,
		Total:             order.Total,
		PaymentScreenshot: order.PaymentScreenshot,
		CreatedAt:         order.CreatedAt,
	}
}

func toCompletedResponse(record model.CompletedOrder) dto.CompletedOrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, dto.OrderItemResponse{Name: item.Name, Price: item.Price, Qty: item.Qty})
	}
	return dto.CompletedOrderResponse{
		ID:          record.ID,
		OrderID:     record.OrderID,
		Token:       record.Token,
		Items:       items,
		Total:       record.Total,
		CompletedAt: record.CompletedAt,
	}
}
