// Command shopctl is the storefront client: it keeps a local cart and
// session, talks to the storefront API, and places orders from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	sdkapp "github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	appkg "github.com/Jitendrakumar99/shivam-commerce/internal/app"
)

const usage = `usage: shopctl <command> [flags]

commands:
  login | register | logout        manage the session
  catalog                          browse products
  cart add|remove|set|show|clear   edit the local cart
  checkout                         place an order from the cart
  orders [show|cancel|reorder]     inspect past orders
  wishlist [add|remove]            manage saved products
  notifications [read|delete]      manage the notification feed
  reviews [add]                    read and write product reviews
  contact                          send a message to the shop
  upload                           upload an image file
  customize                        request a generated product preview
  backup | restore                 archive local snapshots
`

func main() {
	sdkapp.Run(func(ctx context.Context, lg *zap.Logger, m *sdkapp.Telemetry) error {
		args := os.Args[1:]
		if len(args) == 0 {
			fmt.Fprint(os.Stderr, usage)
			return fmt.Errorf("missing command")
		}

		cfg, err := appkg.LoadConfig()
		if err != nil {
			return err
		}

		deps, err := appkg.Build(ctx, lg, m, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		return dispatch(ctx, deps, args[0], args[1:])
	})
}

func dispatch(ctx context.Context, deps *appkg.Deps, cmd string, args []string) error {
	switch cmd {
	case "login":
		return cmdLogin(ctx, deps, args)
	case "register":
		return cmdRegister(ctx, deps, args)
	case "logout":
		return deps.Store.Logout(ctx)
	case "catalog":
		return cmdCatalog(ctx, deps, args)
	case "cart":
		return cmdCart(ctx, deps, args)
	case "checkout":
		return cmdCheckout(ctx, deps, args)
	case "orders":
		return cmdOrders(ctx, deps, args)
	case "wishlist":
		return cmdWishlist(ctx, deps, args)
	case "notifications":
		return cmdNotifications(ctx, deps, args)
	case "reviews":
		return cmdReviews(ctx, deps, args)
	case "contact":
		return cmdContact(ctx, deps, args)
	case "upload":
		return cmdUpload(ctx, deps, args)
	case "customize":
		return cmdCustomize(ctx, deps, args)
	case "backup":
		return cmdBackup(ctx, deps, args)
	case "restore":
		return cmdRestore(ctx, deps, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
