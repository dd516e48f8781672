package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/order"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
)

// refreshList runs one three-phase list fetch against a collection. Writes
// are pessimistic: nothing touches local state before the server confirms,
// and on failure the previous state is left untouched apart from the error
// message.
func refreshList[T any](ctx context.Context, c *Collection[T], fetch func(context.Context) ([]T, error)) error {
	gen := c.begin()
	items, err := fetch(ctx)
	if err != nil {
		c.fail(gen, api.Message(err))
		return err
	}
	c.replace(gen, items)
	return nil
}

// mutate runs one confirmed server mutation and merges its result. The merge
// callback only fires when the operation is still the newest one.
func mutate[T any](ctx context.Context, c *Collection[T], op func(context.Context) (T, error), merge func(gen uint64, item T) bool) error {
	gen := c.begin()
	item, err := op(ctx)
	if err != nil {
		c.fail(gen, api.Message(err))
		return err
	}
	merge(gen, item)
	return nil
}

// RefreshProducts replaces the catalog collection with the server page for
// the given query.
func (s *Store) RefreshProducts(ctx context.Context, q api.ProductQuery) error {
	return refreshList(ctx, s.Products, func(ctx context.Context) ([]product.Product, error) {
		page, err := s.client.Products.List(ctx, q)
		if err != nil {
			return nil, err
		}
		return page.Items, nil
	})
}

// RefreshBrands replaces the brand collection.
func (s *Store) RefreshBrands(ctx context.Context) error {
	return refreshList(ctx, s.Brands, s.client.Brands.List)
}

// RefreshCategories replaces the category collection.
func (s *Store) RefreshCategories(ctx context.Context) error {
	return refreshList(ctx, s.Categories, s.client.Categories.List)
}

// RefreshOrders replaces the order history. Requires a session.
func (s *Store) RefreshOrders(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	return refreshList(ctx, s.Orders, s.client.Orders.List)
}

// RefreshWishlist replaces the wishlist. Requires a session.
func (s *Store) RefreshWishlist(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	return refreshList(ctx, s.Wishlist, s.client.Wishlist.List)
}

// RefreshNotifications replaces the notification feed. Requires a session.
func (s *Store) RefreshNotifications(ctx context.Context) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	return refreshList(ctx, s.Notifications, s.client.Notifications.List)
}

// RefreshReviews replaces the review collection with one product's reviews.
func (s *Store) RefreshReviews(ctx context.Context, productID string) error {
	return refreshList(ctx, s.Reviews, func(ctx context.Context) ([]api.Review, error) {
		return s.client.Reviews.ListByProduct(ctx, productID)
	})
}

// Refresh fans out the initial list fetches. Session-scoped collections are
// included only when signed in. The first failure wins, but every fetch
// runs to completion so partial data still lands.
func (s *Store) Refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.RefreshProducts(ctx, api.ProductQuery{}) })
	g.Go(func() error { return s.RefreshCategories(ctx) })
	g.Go(func() error { return s.RefreshBrands(ctx) })
	if s.Authenticated() {
		g.Go(func() error { return s.RefreshOrders(ctx) })
		g.Go(func() error { return s.RefreshWishlist(ctx) })
		g.Go(func() error { return s.RefreshNotifications(ctx) })
	}
	return g.Wait()
}

// LoadOrder fetches a single order into the Orders current slot. An order
// owned by another user is rejected as a terminal access-denied state, not
// stored, and not retryable.
func (s *Store) LoadOrder(ctx context.Context, id string) (*order.Order, error) {
	if !s.Authenticated() {
		return nil, ErrNotSignedIn
	}
	gen := s.Orders.begin()
	o, err := s.client.Orders.Get(ctx, id)
	if err != nil {
		s.Orders.fail(gen, api.Message(err))
		return nil, err
	}
	if !o.OwnedBy(s.Session().User.ID) {
		s.Orders.fail(gen, "access denied")
		return nil, order.ErrAccessDenied
	}
	s.Orders.setCurrent(gen, *o)
	return o, nil
}

// CancelOrder cancels a pending or processing order and swaps the server's
// cancelled representation into local state. The status gate runs locally
// first; the server re-enforces it.
func (s *Store) CancelOrder(ctx context.Context, id string) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	v := s.Orders.View()
	for _, o := range v.Items {
		if o.ID == id && !o.Status.CanCancel() {
			return order.ErrNotCancelable
		}
	}
	return mutate(ctx, s.Orders, func(ctx context.Context) (order.Order, error) {
		o, err := s.client.Orders.Cancel(ctx, id)
		if err != nil {
			return order.Order{}, err
		}
		return *o, nil
	}, s.Orders.replaceByID)
}

// AddToWishlist saves a product; the confirmed entry is prepended.
func (s *Store) AddToWishlist(ctx context.Context, productID string) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	return mutate(ctx, s.Wishlist, func(ctx context.Context) (api.WishlistItem, error) {
		it, err := s.client.Wishlist.Add(ctx, productID)
		if err != nil {
			return api.WishlistItem{}, err
		}
		return *it, nil
	}, s.Wishlist.prepend)
}

// RemoveFromWishlist deletes a wishlist entry after server confirmation.
// Dangling entries are removed the same way.
func (s *Store) RemoveFromWishlist(ctx context.Context, id string) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	gen := s.Wishlist.begin()
	if err := s.client.Wishlist.Remove(ctx, id); err != nil {
		s.Wishlist.fail(gen, api.Message(err))
		return err
	}
	s.Wishlist.removeByID(gen, id)
	return nil
}

// MarkNotificationRead flags a notification read and swaps in the updated
// entry.
func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	return mutate(ctx, s.Notifications, func(ctx context.Context) (api.Notification, error) {
		n, err := s.client.Notifications.MarkRead(ctx, id)
		if err != nil {
			return api.Notification{}, err
		}
		return *n, nil
	}, s.Notifications.replaceByID)
}

// DeleteNotification removes a notification after server confirmation.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	gen := s.Notifications.begin()
	if err := s.client.Notifications.Delete(ctx, id); err != nil {
		s.Notifications.fail(gen, api.Message(err))
		return err
	}
	s.Notifications.removeByID(gen, id)
	return nil
}

// SubmitReview posts a review; the confirmed entry is prepended.
func (s *Store) SubmitReview(ctx context.Context, productID string, rating int, comment string) error {
	if !s.Authenticated() {
		return ErrNotSignedIn
	}
	return mutate(ctx, s.Reviews, func(ctx context.Context) (api.Review, error) {
		r, err := s.client.Reviews.Create(ctx, productID, rating, comment)
		if err != nil {
			return api.Review{}, err
		}
		return *r, nil
	}, s.Reviews.prepend)
}

// UpdateReview edits a review and swaps in the server's representation.
func (s *Store) UpdateReview(ctx context.Context, id string, rating int, comment string) error {
	return mutate(ctx, s.Reviews, func(ctx context.Context) (api.Review, error) {
		r, err := s.client.Reviews.Update(ctx, id, rating, comment)
		if err != nil {
			return api.Review{}, err
		}
		return *r, nil
	}, s.Reviews.replaceByID)
}

// DeleteReview removes a review after server confirmation.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	gen := s.Reviews.begin()
	if err := s.client.Reviews.Delete(ctx, id); err != nil {
		s.Reviews.fail(gen, api.Message(err))
		return err
	}
	s.Reviews.removeByID(gen, id)
	return nil
}

// Login authenticates, installs the token on the client, and persists the
// session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	sess, err := s.client.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.setSession(ctx, *sess)
}

// Register creates an account and signs in.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	sess, err := s.client.Auth.Register(ctx, name, email, password)
	if err != nil {
		return err
	}
	return s.setSession(ctx, *sess)
}
