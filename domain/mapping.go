package domain

import "github.com/zerontec/rork-nexusdelivery-sub001/models"

// One explicit mapping function per entity. These are the only place the
// snake_case table shapes are translated into client shapes.

func OrderFromRow(row models.Order) Order {
	items := make([]OrderItem, 0, len(row.Items))
	for _, it := range row.Items {
		items = append(items, OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Notes:     it.Notes,
		})
	}
	driverID := ""
	if row.DriverID != nil {
		driverID = *row.DriverID
	}
	return Order{
		ID:          row.ID,
		BusinessID:  row.BusinessID,
		ClientID:    row.ClientID,
		DriverID:    driverID,
		Status:      row.Status,
		Items:       items,
		Subtotal:    row.Subtotal,
		DeliveryFee: row.DeliveryFee,
		Total:       row.Total,
		DeliveryAddress: DeliveryAddress{
			Latitude:  row.DeliveryAddress.Latitude,
			Longitude: row.DeliveryAddress.Longitude,
			Address:   row.DeliveryAddress.Address,
			Notes:     row.DeliveryAddress.Notes,
		},
		PaymentMethod:     row.PaymentMethod,
		EstimatedDelivery: row.EstimatedDelivery,
		CreatedAt:         row.CreatedAt,
	}
}

func OrdersFromRows(rows []models.Order) []Order {
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, OrderFromRow(row))
	}
	return orders
}

func NotificationFromRow(row models.Notification) Notification {
	orderID := ""
	if row.OrderID != nil {
		orderID = *row.OrderID
	}
	return Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Type:      row.Type,
		Title:     row.Title,
		Message:   row.Message,
		OrderID:   orderID,
		Metadata:  row.Metadata,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}

func NotificationsFromRows(rows []models.Notification) []Notification {
	notes := make([]Notification, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, NotificationFromRow(row))
	}
	return notes
}

func ProductFromRow(row models.Product) Product {
	return Product{
		ID:          row.ID,
		BusinessID:  row.BusinessID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Category:    row.Category,
		ImageURL:    row.ImageURL,
		IsAvailable: row.IsAvailable,
	}
}

func BusinessFromRow(row models.Business) Business {
	return Business{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Name:         row.Name,
		Description:  row.Description,
		Category:     row.Category,
		Address:      row.Address,
		ImageURL:     row.ImageURL,
		DeliveryFee:  row.DeliveryFee,
		DeliveryTime: row.DeliveryTime,
		FreeDelivery: row.DeliveryFee == 0,
		IsOpen:       row.IsOpen,
		Rating:       row.Rating,
	}
}

func DriverFromRow(row models.Driver) Driver {
	return Driver{
		ID:          row.ID,
		ProfileID:   row.ProfileID,
		Name:        row.Profile.Name,
		VehicleType: row.VehicleType,
		PlateNumber: row.PlateNumber,
		IsAvailable: row.IsAvailable,
		Rating:      row.Rating,
	}
}

func UserFromRow(row models.Profile) User {
	return User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Role:      row.Role,
		Phone:     row.Phone,
		AvatarURL: row.AvatarURL,
	}
}
