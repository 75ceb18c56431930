package postgres

import (
	"storefront/internal/domain/entity"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
)

func toProductDomain(productM *model.ProductModel) *entity.Product {
	if productM == nil {
		return nil
	}

	return &entity.Product{
		ID:          productM.ID,
		CategoryID:  productM.CategoryID,
		Name:        productM.Name,
		Slug:        productM.Slug,
		Description: productM.Description,
		Price:       productM.Price,
		Inventory:   productM.Inventory,
		ImageURL:    productM.ImageURL,
		IsActive:    productM.IsActive,
		CreatedAt:   productM.CreatedAt,
		UpdatedAt:   productM.UpdatedAt,
	}
}

func toCategoryDomain(categoryM *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:          categoryM.ID,
		Name:        categoryM.Name,
		Slug:        categoryM.Slug,
		Description: categoryM.Description,
		IsActive:    categoryM.IsActive,
		CreatedAt:   categoryM.CreatedAt,
	}
}

// toCartDomain drops lines whose product row no longer exists.
func toCartDomain(cartM *model.CartModel) *entity.RemoteCart {
	items := make([]entity.CartItem, 0, len(cartM.Items))
	for idx := range cartM.Items {
		itemM := &cartM.Items[idx]
		if itemM.Product == nil {
			continue
		}
		items = append(items, entity.CartItem{
			Product:  *toProductDomain(itemM.Product),
			Quantity: itemM.Quantity,
		})
	}

	return &entity.RemoteCart{
		ID:        cartM.ID,
		UserID:    cartM.UserID,
		Items:     items,
		CreatedAt: cartM.CreatedAt,
		UpdatedAt: cartM.UpdatedAt,
	}
}

func fromCartItemsDomain(cartID uuid.UUID, items []entity.CartItem) []model.CartItemModel {
	rows := make([]model.CartItemModel, 0, len(items))
	for position, item := range items {
		rows = append(rows, model.CartItemModel{
			CartID:    cartID,
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Position:  position,
		})
	}

	return rows
}

func fromAddressDomain(address *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:         address.ID,
		UserID:     address.UserID,
		Street:     address.Street,
		City:       address.City,
		State:      address.State,
		PostalCode: address.PostalCode,
		Country:    address.Country,
		CreatedAt:  address.CreatedAt,
	}
}

func toAddressDomain(addressM *model.AddressModel) *entity.Address {
	if addressM == nil {
		return nil
	}

	return &entity.Address{
		ID:         addressM.ID,
		UserID:     addressM.UserID,
		Street:     addressM.Street,
		City:       addressM.City,
		State:      addressM.State,
		PostalCode: addressM.PostalCode,
		Country:    addressM.Country,
		CreatedAt:  addressM.CreatedAt,
	}
}

func fromOrderDomain(order *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:        order.ID,
		UserID:    order.UserID,
		AddressID: order.AddressID,
		Total:     order.Total,
		Status:    order.Status.String(),
	}
}

func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(orderM.Items))
	for idx := range orderM.Items {
		items = append(items, *toOrderItemDomain(&orderM.Items[idx]))
	}

	return &entity.Order{
		ID:        orderM.ID,
		UserID:    orderM.UserID,
		AddressID: orderM.AddressID,
		Address:   toAddressDomain(orderM.Address),
		Total:     orderM.Total,
		Status:    entity.OrderStatus(orderM.Status),
		Items:     items,
		CreatedAt: orderM.CreatedAt,
		UpdatedAt: orderM.UpdatedAt,
	}
}

func fromOrderItemDomain(item *entity.OrderItem) model.OrderItemModel {
	return model.OrderItemModel{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		Position:  item.Position,
	}
}

// toOrderItemDomain keeps the captured unit price; the joined product only
// contributes its name.
func toOrderItemDomain(itemM *model.OrderItemModel) *entity.OrderItem {
	item := &entity.OrderItem{
		ID:        itemM.ID,
		OrderID:   itemM.OrderID,
		ProductID: itemM.ProductID,
		Quantity:  itemM.Quantity,
		UnitPrice: itemM.UnitPrice,
		Position:  itemM.Position,
		CreatedAt: itemM.CreatedAt,
	}
	if itemM.Product != nil {
		item.ProductName = itemM.Product.Name
	}

	return item
}

func toUserDomain(profileM *model.ProfileModel) *entity.User {
	return &entity.User{
		ID:        profileM.ID,
		Email:     profileM.Email,
		FullName:  profileM.FullName,
		Phone:     profileM.Phone,
		CreatedAt: profileM.CreatedAt,
		UpdatedAt: profileM.UpdatedAt,
	}
}
