package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/Jitendrakumar99/shivam-commerce/internal/api"
	appkg "github.com/Jitendrakumar99/shivam-commerce/internal/app"
	"github.com/Jitendrakumar99/shivam-commerce/internal/checkout"
	"github.com/Jitendrakumar99/shivam-commerce/internal/domain/product"
	"github.com/Jitendrakumar99/shivam-commerce/internal/storage"
)

func cmdLogin(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("login requires -email and -password")
	}
	if err := deps.Store.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", deps.Store.Session().User.Name)
	return nil
}

func cmdRegister(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return errors.New("register requires -name, -email and -password")
	}
	if err := deps.Store.Register(ctx, *name, *email, *password); err != nil {
		return err
	}
	fmt.Printf("account created, signed in as %s\n", *name)
	return nil
}

func cmdCatalog(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	category := fs.String("category", "", "filter by category")
	brand := fs.String("brand", "", "filter by brand")
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 0, "result page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := deps.Store.RefreshProducts(ctx, api.ProductQuery{
		Category: *category,
		Brand:    *brand,
		Search:   *search,
		Page:     *page,
	}); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBRAND\tPRICE")
	for _, p := range deps.Store.Products.View().Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Brand, p.Price.StringFixed(2))
	}
	return w.Flush()
}

func cmdCart(ctx context.Context, deps *appkg.Deps, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "add":
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		id := fs.String("id", "", "product id")
		qty := fs.Int("qty", 1, "quantity to add")
		size := fs.String("size", "", "selected size")
		color := fs.String("color", "", "selected color")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *id == "" {
			return errors.New("cart add requires -id")
		}
		p, err := deps.Store.Client().Products.Get(ctx, *id)
		if err != nil {
			return err
		}
		v := product.Variant{Size: *size, Color: *color}
		if err := deps.Store.AddItem(ctx, *p, v, *qty); err != nil {
			return err
		}
	case "remove":
		fs := flag.NewFlagSet("cart remove", flag.ContinueOnError)
		id := fs.String("id", "", "product id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := deps.Store.RemoveItem(ctx, *id); err != nil {
			return err
		}
	case "set":
		fs := flag.NewFlagSet("cart set", flag.ContinueOnError)
		id := fs.String("id", "", "product id")
		qty := fs.Int("qty", 0, "absolute quantity, 0 removes the line")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if err := deps.Store.UpdateQuantity(ctx, *id, *qty); err != nil {
			return err
		}
	case "clear":
		if err := deps.Store.ClearCart(ctx); err != nil {
			return err
		}
	case "show":
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}

	return printCart(deps)
}

func printCart(deps *appkg.Deps) error {
	state := deps.Store.Cart()
	if state.Empty() {
		fmt.Println("cart is empty")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVARIANT\tQTY\tPRICE\tSUBTOTAL")
	for _, l := range state.Items {
		variant := l.Variant.Size
		if l.Variant.Color != "" {
			variant += "/" + l.Variant.Color
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			l.ProductID, l.Name, variant, l.Quantity,
			l.Price.StringFixed(2), l.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(w, "\t\t\t\tTOTAL\t%s\n", state.Total().StringFixed(2))
	return w.Flush()
}

func cmdCheckout(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	addressID := fs.String("address", deps.Config.AddressID, "saved address id for prefill")
	payment := fs.String("payment", "", "payment method, defaults to cod")
	name := fs.String("name", "", "override recipient name")
	phone := fs.String("phone", "", "override phone")
	line1 := fs.String("line1", "", "override street address")
	city := fs.String("city", "", "override city")
	state := fs.String("state", "", "override state")
	postal := fs.String("postal", "", "override postal code")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := checkout.Begin(deps.Store, *addressID)
	if err != nil {
		return err
	}

	form := c.Form()
	if *payment != "" {
		form.PaymentMethod = *payment
	}
	apply := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	apply(&form.Shipping.Name, *name)
	apply(&form.Shipping.Phone, *phone)
	apply(&form.Shipping.Line1, *line1)
	apply(&form.Shipping.City, *city)
	apply(&form.Shipping.State, *state)
	apply(&form.Shipping.PostalCode, *postal)
	if err := c.SetForm(form); err != nil {
		return err
	}

	if fields := checkout.Validate(form); len(fields) > 0 {
		for _, f := range fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
		}
		return errors.New("shipping form is incomplete")
	}

	conf, err := c.Submit(ctx)
	if err != nil {
		if msg := c.Err(); msg != "" {
			return errors.Errorf("order was not placed: %s", msg)
		}
		return err
	}

	fmt.Printf("order %s placed\n", conf.OrderID)
	fmt.Printf("tracking: %s\n", conf.TrackingNumber)
	fmt.Printf("total: %s\n", conf.Total.StringFixed(2))
	return nil
}

func cmdOrders(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) == 0 {
		if err := deps.Store.RefreshOrders(ctx); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tTRACKING\tPLACED")
		for _, o := range deps.Store.Orders.View().Items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.Status, o.Total.StringFixed(2), o.Tracking(),
				o.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()
	}

	sub := args[0]
	if len(args) < 2 {
		return errors.Errorf("orders %s requires an order id", sub)
	}
	id := args[1]

	switch sub {
	case "show":
		o, err := deps.Store.LoadOrder(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("order %s  %s  tracking %s\n", o.ID, o.Status, o.Tracking())
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, it := range o.Items {
			fmt.Fprintf(w, "  %s\tx%d\t%s\n", it.Name, it.Quantity, it.Price.StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("total %s, ship to %s, %s %s\n",
			o.Total.StringFixed(2), o.Shipping.Line1, o.Shipping.City, o.Shipping.PostalCode)
		return nil
	case "cancel":
		if err := deps.Store.CancelOrder(ctx, id); err != nil {
			return err
		}
		fmt.Printf("order %s cancelled\n", id)
		return nil
	case "reorder":
		o, err := deps.Store.LoadOrder(ctx, id)
		if err != nil {
			return err
		}
		if err := deps.Store.Reorder(ctx, *o); err != nil {
			return err
		}
		return printCart(deps)
	default:
		return fmt.Errorf("unknown orders subcommand %q", sub)
	}
}

func cmdWishlist(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "add":
			if len(args) < 2 {
				return errors.New("wishlist add requires a product id")
			}
			if err := deps.Store.AddToWishlist(ctx, args[1]); err != nil {
				return err
			}
		case "remove":
			if len(args) < 2 {
				return errors.New("wishlist remove requires an entry id")
			}
			if err := deps.Store.RemoveFromWishlist(ctx, args[1]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown wishlist subcommand %q", args[0])
		}
	} else if err := deps.Store.RefreshWishlist(ctx); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tPRICE")
	for _, it := range deps.Store.Wishlist.View().Items {
		if it.Dangling() {
			fmt.Fprintf(w, "%s\t(no longer available)\t\n", it.ID)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, it.Product.Name, it.Product.Price.StringFixed(2))
	}
	return w.Flush()
}

func cmdNotifications(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "read":
			if len(args) < 2 {
				return errors.New("notifications read requires an id")
			}
			return deps.Store.MarkNotificationRead(ctx, args[1])
		case "delete":
			if len(args) < 2 {
				return errors.New("notifications delete requires an id")
			}
			return deps.Store.DeleteNotification(ctx, args[1])
		default:
			return fmt.Errorf("unknown notifications subcommand %q", args[0])
		}
	}

	if err := deps.Store.RefreshNotifications(ctx); err != nil {
		return err
	}
	for _, n := range deps.Store.Notifications.View().Items {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s %s  %s - %s\n", marker, n.ID, n.Title, n.Body)
	}
	return nil
}

func cmdReviews(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ContinueOnError)
	productID := fs.String("product", "", "product id")
	rating := fs.Int("rating", 0, "rating 1-5, submits a review when set")
	comment := fs.String("comment", "", "review text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == "" {
		return errors.New("reviews requires -product")
	}

	if *rating > 0 {
		if err := deps.Store.SubmitReview(ctx, *productID, *rating, *comment); err != nil {
			return err
		}
	} else if err := deps.Store.RefreshReviews(ctx, *productID); err != nil {
		return err
	}

	for _, r := range deps.Store.Reviews.View().Items {
		fmt.Printf("%d/5  %s\n", r.Rating, r.Comment)
	}
	return nil
}

func cmdContact(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	name := fs.String("name", "", "sender name")
	email := fs.String("email", "", "sender email")
	message := fs.String("message", "", "message body")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *message == "" {
		return errors.New("contact requires -message")
	}

	ack, err := deps.Store.Client().Contact.Send(ctx, *name, *email, *message)
	if err != nil {
		return err
	}
	fmt.Println(ack)
	return nil
}

func cmdUpload(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) < 1 {
		return errors.New("upload requires a file path")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open file")
	}
	defer func() { _ = f.Close() }()

	path, err := deps.Store.Client().Uploads.File(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func cmdCustomize(ctx context.Context, deps *appkg.Deps, args []string) error {
	fs := flag.NewFlagSet("customize", flag.ContinueOnError)
	productID := fs.String("product", "", "product id")
	prompt := fs.String("prompt", "", "customization description")
	source := fs.String("source", "", "uploaded source image path")
	out := fs.String("out", "preview.png", "output file for the generated image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *productID == "" || *prompt == "" {
		return errors.New("customize requires -product and -prompt")
	}

	preview, err := deps.Store.Client().Customizations.Preview(ctx, api.PreviewReq{
		ProductID:   *productID,
		Prompt:      *prompt,
		SourceImage: *source,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, preview.Image, 0o644); err != nil {
		return errors.Wrap(err, "write preview")
	}
	fmt.Printf("wrote %s (%s)\n", *out, preview.MimeType)
	return nil
}

func cmdBackup(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) < 1 {
		return errors.New("backup requires an output path")
	}
	f, err := os.Create(args[0])
	if err != nil {
		return errors.Wrap(err, "create archive")
	}
	defer func() { _ = f.Close() }()

	if err := storage.ExportArchive(ctx, deps.Snapshots, f); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func cmdRestore(ctx context.Context, deps *appkg.Deps, args []string) error {
	if len(args) < 1 {
		return errors.New("restore requires an archive path")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open archive")
	}
	defer func() { _ = f.Close() }()

	if err := storage.ImportArchive(ctx, deps.Snapshots, f); err != nil {
		return err
	}
	fmt.Println("snapshots restored, next run picks them up")
	return nil
}
