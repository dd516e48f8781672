package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/order"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/user"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

// OrdersService creates and reads server-owned orders.
type OrdersService service

// OrderReqItem is one line in an order submission: the product id, quantity,
// and the price snapshot captured at add time.
type OrderReqItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// OrderReq is the order-creation payload.
type OrderReq struct {
	Items         []OrderReqItem
	Shipping      user.Address
	PaymentMethod string
}

func (r OrderReq) encode() []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range r.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product_id", func(e *jx.Encoder) { e.Str(it.ProductID) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
						e.Field("price", func(e *jx.Encoder) { e.Str(it.Price.String()) })
					})
				}
			})
		})
		e.Field("shipping", func(e *jx.Encoder) { encodeAddress(e, r.Shipping) })
		e.Field("payment_method", func(e *jx.Encoder) { e.Str(r.PaymentMethod) })
	})
	return e.Bytes()
}

func encodeAddress(e *jx.Encoder, a user.Address) {
	e.Obj(func(e *jx.Encoder) {
		if a.ID != "" {
			e.Field("id", func(e *jx.Encoder) { e.Str(a.ID) })
		}
		e.Field("name", func(e *jx.Encoder) { e.Str(a.Name) })
		e.Field("phone", func(e *jx.Encoder) { e.Str(a.Phone) })
		e.Field("line1", func(e *jx.Encoder) { e.Str(a.Line1) })
		e.Field("city", func(e *jx.Encoder) { e.Str(a.City) })
		e.Field("state", func(e *jx.Encoder) { e.Str(a.State) })
		e.Field("postal_code", func(e *jx.Encoder) { e.Str(a.PostalCode) })
	})
}

// List fetches the caller's orders, most recent first.
func (s *OrdersService) List(ctx context.Context) ([]order.Order, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}

	var out []order.Order
	if _, err := decodeList(body, func(d *jx.Decoder) error {
		o, err := decodeOrder(d)
		if err != nil {
			return err
		}
		out = append(out, o)
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single order by id.
func (s *OrdersService) Get(ctx context.Context, id string) (*order.Order, error) {
	body, err := s.c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOrderData(body)
}

// Create submits a new order and returns the server's representation.
func (s *OrdersService) Create(ctx context.Context, req OrderReq) (*order.Order, error) {
	body, err := s.c.do(ctx, http.MethodPost, "/orders", req.encode())
	if err != nil {
		return nil, err
	}
	return decodeOrderData(body)
}

// Cancel asks the backend to cancel an order and returns its updated
// representation. The server re-enforces the pending/processing rule.
func (s *OrdersService) Cancel(ctx context.Context, id string) (*order.Order, error) {
	body, err := s.c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil)
	if err != nil {
		return nil, err
	}
	return decodeOrderData(body)
}

func decodeOrderData(body []byte) (*order.Order, error) {
	var o order.Order
	if err := decodeData(body, func(d *jx.Decoder) error {
		var derr error
		o, derr = decodeOrder(d)
		return derr
	}); err != nil {
		return nil, err
	}
	return &o, nil
}

func decodeOrder(d *jx.Decoder) (order.Order, error) {
	var o order.Order
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			o.ID, err = d.Str()
		case "user_id":
			o.UserID, err = d.Str()
		case "tracking_number":
			o.TrackingNumber, err = d.Str()
		case "items":
			err = d.Arr(func(d *jx.Decoder) error {
				it, ierr := decodeOrderItem(d)
				if ierr != nil {
					return ierr
				}
				o.Items = append(o.Items, it)
				return nil
			})
		case "total":
			o.Total, err = storage.DecodeDecimal(d)
		case "shipping":
			o.Shipping, err = decodeWireAddress(d)
		case "payment_method":
			o.PaymentMethod, err = d.Str()
		case "payment_status":
			o.PaymentStatus, err = d.Str()
		case "status":
			var raw string
			if raw, err = d.Str(); err == nil {
				o.Status, err = order.ParseStatus(raw)
			}
		case "created_at":
			o.CreatedAt, err = decodeTime(d)
		case "updated_at":
			o.UpdatedAt, err = decodeTime(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return o, err
}

func decodeOrderItem(d *jx.Decoder) (order.Item, error) {
	var it order.Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "product_id":
			it.ProductID, err = d.Str()
		case "name":
			it.Name, err = d.Str()
		case "image":
			it.Image, err = d.Str()
		case "price":
			it.Price, err = storage.DecodeDecimal(d)
		case "quantity":
			it.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	return it, err
}

func decodeWireAddress(d *jx.Decoder) (user.Address, error) {
	var a user.Address
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			a.ID, err = d.Str()
		case "name":
			a.Name, err = d.Str()
		case "phone":
			a.Phone, err = d.Str()
		case "line1":
			a.Line1, err = d.Str()
		case "city":
			a.City, err = d.Str()
		case "state":
			a.State, err = d.Str()
		case "postal_code":
			a.PostalCode, err = d.Str()
		case "default":
			a.Default, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
	return a, err
}
