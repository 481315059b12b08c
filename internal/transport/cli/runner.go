package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	cart "github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/cart/usecases/add_to_cart"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain/services"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/list_products"
	svc "github.com/light-bringer/storefront-core/internal/services"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

const usage = `usage: storefront <command> [flags]

commands:
  products [-search s] [-category c] [-vendor v] [-sort title|price] [-reverse] [-pages n | -all] [-page-size n]
  product <handle>
  filters
  featured
  cart                                   show the cart
  cart add <handle> [-size s] [-color c] [-qty n]
  cart set <product-id> <variant-id> <n>
  cart remove <product-id> <variant-id>
  cart clear
`

// Runner dispatches command lines against the wired application.
type Runner struct {
	opts *svc.ServiceOptions
	out  io.Writer
}

// NewRunner creates a runner writing command output to out.
func NewRunner(opts *svc.ServiceOptions, out io.Writer) *Runner {
	return &Runner{
		opts: opts,
		out:  out,
	}
}

// Usage prints the command summary.
func (r *Runner) Usage() {
	fmt.Fprint(r.out, usage)
}

// Run executes one command.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		r.Usage()
		return ErrUsage
	}

	var err error
	switch args[0] {
	case "products":
		err = r.products(ctx, args[1:])
	case "product":
		err = r.product(ctx, args[1:])
	case "filters":
		err = r.filters(ctx)
	case "featured":
		err = r.featured(ctx)
	case "cart":
		err = r.cart(ctx, args[1:])
	case "help", "-h", "--help":
		r.Usage()
		return nil
	default:
		r.Usage()
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return r.report(err)
}

// report turns catalog failures into the inline message shown to the user.
func (r *Runner) report(err error) error {
	if err == nil || errors.Is(err, ErrUsage) {
		return err
	}
	if errors.Is(err, domain.ErrStaleResponse) {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrTimeout):
		fmt.Fprintln(r.out, "The store took too long to respond. Please try again.")
	case errors.Is(err, domain.ErrNetwork):
		fmt.Fprintln(r.out, "Could not reach the store. Check your connection and try again.")
	case errors.Is(err, domain.ErrProtocol):
		fmt.Fprintln(r.out, "The store sent an unexpected response.")
	}
	r.opts.Logger.Error("command failed", "error", err)
	return err
}

func (r *Runner) products(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	fs.SetOutput(r.out)
	search := fs.String("search", "", "title contains")
	category := fs.String("category", "", "product type")
	vendor := fs.String("vendor", "", "vendor")
	sortKey := fs.String("sort", "title", "title or price")
	reverse := fs.Bool("reverse", false, "descending order")
	pages := fs.Int("pages", 1, "number of pages to load")
	all := fs.Bool("all", false, "load every page")
	pageSize := fs.Int("page-size", 0, "products per page")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	key, err := domain.ParseSortKey(*sortKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	filters := domain.Filters{
		Search:   *search,
		Category: *category,
		Vendor:   *vendor,
		Sort:     domain.Sort{Key: key, Reverse: *reverse},
	}

	session := r.opts.NewListing(*pageSize)
	defer session.Close()

	var result list_products.Result
	if *all {
		result, err = session.LoadAll(ctx, filters)
	} else {
		result, err = session.Apply(ctx, filters)
		for i := 1; err == nil && i < *pages && result.HasMore(); i++ {
			result, err = session.LoadMore(ctx)
		}
	}
	if err != nil {
		return err
	}

	if q, ok := result.Filters.SearchQuery(); ok {
		fmt.Fprintf(r.out, "Query: %s\n", q)
	}
	renderProducts(r.out, result.Products)
	if result.HasMore() {
		fmt.Fprintln(r.out, "More products available (use -pages or -all).")
	}
	return nil
}

func (r *Runner) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: product <handle>", ErrUsage)
	}

	view, err := r.opts.GetProduct.Execute(ctx, &get_product.Request{Handle: args[0]})
	if errors.Is(err, domain.ErrProductNotFound) {
		fmt.Fprintf(r.out, "Product %q was not found. Here are some featured products instead.\n\n", args[0])
		return r.featured(ctx)
	}
	if err != nil {
		return err
	}

	renderProductView(r.out, view)
	return nil
}

func (r *Runner) filters(ctx context.Context) error {
	res, err := r.opts.ListFilters.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, "Categories:")
	renderList(r.out, res.Categories)
	fmt.Fprintln(r.out, "Vendors:")
	renderList(r.out, res.Vendors)
	return nil
}

func (r *Runner) featured(ctx context.Context) error {
	products, err := r.opts.Featured.Execute(ctx)
	if err != nil {
		return err
	}
	renderProducts(r.out, products)
	return nil
}

func (r *Runner) cart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		renderCart(r.out, r.opts.Cart.Cart())
		return nil
	}

	store := r.opts.Cart
	switch args[0] {
	case "add":
		return r.cartAdd(ctx, args[1:])
	case "set":
		if len(args) != 4 {
			return fmt.Errorf("%w: cart set <product-id> <variant-id> <n>", ErrUsage)
		}
		n, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("%w: quantity %q", ErrUsage, args[3])
		}
		if err := store.SetQuantity(ctx, args[1], args[2], n); err != nil {
			return err
		}
	case "remove":
		if len(args) != 3 {
			return fmt.Errorf("%w: cart remove <product-id> <variant-id>", ErrUsage)
		}
		if err := store.RemoveFromCart(ctx, args[1], args[2]); err != nil {
			return err
		}
	case "clear":
		if err := store.ClearCart(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown cart command %q", ErrUsage, args[0])
	}

	renderCart(r.out, store.Cart())
	return nil
}

func (r *Runner) cartAdd(ctx context.Context, args []string) error {
	// accept the handle before or after the flags
	var handle string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		handle, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
	fs.SetOutput(r.out)
	size := fs.String("size", "", "size option")
	color := fs.String("color", "", "color option")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if handle == "" && fs.NArg() == 1 {
		handle = fs.Arg(0)
	}
	if handle == "" {
		return fmt.Errorf("%w: cart add <handle> [-size s] [-color c] [-qty n]", ErrUsage)
	}
	if *qty < 1 {
		return fmt.Errorf("%w: -qty must be at least 1", ErrUsage)
	}

	resp, err := r.opts.AddToCart.Execute(ctx, &add_to_cart.Request{
		Handle: handle,
		Selections: services.Selection{
			services.AxisSize:  *size,
			services.AxisColor: *color,
		},
		Quantity: *qty,
	})
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		fmt.Fprintf(r.out, "Product %q was not found.\n", handle)
		return err
	case errors.Is(err, cart.ErrSelectionIncomplete), errors.Is(err, cart.ErrVariantUnavailable):
		fmt.Fprintf(r.out, "Cannot add to cart: %v\n", err)
		return err
	case err != nil:
		return err
	}

	fmt.Fprintf(r.out, "Added %d x %s (%s). Cart: %d item(s).\n\n",
		*qty, resp.Product.Title, resp.Variant.Title, resp.TotalItems)
	renderCart(r.out, r.opts.Cart.Cart())
	return nil
}
