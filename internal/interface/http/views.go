package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkhatri/storefront-core/internal/domain/entity"
)

type userView struct {
	ID         int64  `json:"id"`
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Company    string `json:"company"`
	GSTNumber  string `json:"gst_number"`
	IsVerified bool   `json:"is_verified"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:         u.ID,
		UserID:     u.UserID,
		Email:      u.Email,
		FullName:   u.FullName,
		Company:    u.Company,
		GSTNumber:  u.GSTNumber,
		IsVerified: u.IsVerified,
	}
}

type orderItemView struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type orderView struct {
	ID          int64              `json:"id"`
	OrderID     string             `json:"order_id"`
	Status      entity.OrderStatus `json:"status"`
	Items       []orderItemView    `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	GSTAmount   decimal.Decimal    `json:"gst_amount"`
	NetAmount   decimal.Decimal    `json:"net_amount"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toOrderView(o *entity.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemView{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return orderView{
		ID:          o.ID,
		OrderID:     o.OrderID,
		Status:      o.Status,
		Items:       items,
		TotalAmount: o.TotalAmount,
		GSTAmount:   o.TaxAmount,
		NetAmount:   o.NetAmount,
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderViews(orders []entity.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderView(&orders[i]))
	}
	return out
}

type productView struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	IsActive bool            `json:"is_active"`
}

func toProductView(p *entity.Product) productView {
	return productView{ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category, IsActive: p.IsActive}
}

type addressView struct {
	ID          int64     `json:"id"`
	AddressCode string    `json:"address_code"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAddressView(a *entity.Address) addressView {
	return addressView{ID: a.ID, AddressCode: a.AddressCode, Address: a.Address, CreatedAt: a.CreatedAt}
}
