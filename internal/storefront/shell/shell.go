// Package shell is a line-oriented front end for the storefront controller.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/storefront/app"
)

const help = `commands:
  catalog [all|men|women|kids|couples]   list products
  add <id>                               add a product to the cart
  remove <id>                            drop a cart line
  qty <id> <delta>                       change a line's quantity (min 1)
  cart [json]                            show the cart
  reviews [id]                           list reviews, optionally for one product
  login <username> <password>            sign in as admin
  logout                                 sign out
  whoami                                 check the admin session with the server
  draft [<field> <value>]                show or edit the product draft
  submit                                 add the drafted product
  reload                                 refetch the catalog
  quit`

// Shell reads commands from in and writes results to out.
type Shell struct {
	ctrl *app.Controller
	out  io.Writer
}

func New(ctrl *app.Controller, out io.Writer) *Shell {
	return &Shell{ctrl: ctrl, out: out}
}

// Run processes lines until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if done := s.Exec(ctx, scanner.Text()); done {
			return nil
		}
		s.prompt()
	}
	return scanner.Err()
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, help)
	case "catalog", "ls":
		filter := ""
		if len(args) > 0 {
			filter = args[0]
		}
		products, n := s.ctrl.Browse(filter)
		if n.IsError() {
			s.notice(n)
			return false
		}
		s.printProducts(products)
	case "add":
		if id, ok := s.id(args, 0); ok {
			s.notice(s.ctrl.AddToCart(id))
		}
	case "remove", "rm":
		if id, ok := s.id(args, 0); ok {
			s.notice(s.ctrl.RemoveFromCart(id))
		}
	case "qty":
		id, ok := s.id(args, 0)
		if !ok {
			return false
		}
		if len(args) < 2 {
			fmt.Fprintln(s.out, "usage: qty <id> <delta>")
			return false
		}
		delta, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(s.out, "invalid delta %q\n", args[1])
			return false
		}
		s.notice(s.ctrl.AdjustQuantity(id, delta))
	case "cart":
		if len(args) > 0 && args[0] == "json" {
			s.printCartJSON()
			return false
		}
		s.printCart()
	case "reviews":
		var id int64
		if len(args) > 0 {
			var ok bool
			if id, ok = s.id(args, 0); !ok {
				return false
			}
		}
		reviews, n := s.ctrl.Reviews(ctx, id)
		if n.IsError() {
			s.notice(n)
			return false
		}
		s.printReviews(reviews)
	case "login":
		if len(args) < 2 {
			fmt.Fprintln(s.out, "usage: login <username> <password>")
			return false
		}
		s.notice(s.ctrl.Login(ctx, args[0], args[1]))
	case "logout":
		s.notice(s.ctrl.Logout())
	case "whoami":
		s.notice(s.ctrl.VerifySession(ctx))
	case "draft":
		if len(args) == 0 {
			s.printDraft()
			return false
		}
		// fields[0] opens the trimmed line, args[0] opens what follows it.
		rest := strings.TrimSpace(strings.TrimSpace(line)[len(fields[0]):])
		value := strings.TrimSpace(rest[len(args[0]):])
		s.notice(s.ctrl.EditDraft(args[0], value))
	case "submit":
		s.notice(s.ctrl.Submit(ctx))
	case "reload":
		s.notice(s.ctrl.Reload(ctx))
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

// Notify prints a notice raised outside a command, such as a background
// catalog reload.
func (s *Shell) Notify(n app.Notice) {
	fmt.Fprintln(s.out)
	s.notice(n)
}

func (s *Shell) prompt() {
	prefix := "shop"
	if sess := s.ctrl.Session.Session(); sess.Authenticated {
		prefix = "admin@" + sess.Username
	}
	fmt.Fprintf(s.out, "%s> ", prefix)
}

func (s *Shell) notice(n app.Notice) {
	if n.IsError() {
		fmt.Fprintf(s.out, "! %s\n", n)
		return
	}
	fmt.Fprintf(s.out, "%s\n", n)
}

func (s *Shell) id(args []string, pos int) (int64, bool) {
	if len(args) <= pos {
		fmt.Fprintln(s.out, "missing product id")
		return 0, false
	}
	id, err := strconv.ParseInt(args[pos], 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "invalid product id %q\n", args[pos])
		return 0, false
	}
	return id, true
}

func (s *Shell) printProducts(products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(s.out, "no products")
		return
	}
	for _, p := range products {
		fmt.Fprintf(s.out, "%4d  %-28s %-8s %s\n", p.ID, p.Name, p.Category, s.ctrl.FormatPrice(p.Price))
	}
}

func (s *Shell) printCart() {
	snap := s.ctrl.Cart.Snapshot()
	if snap.IsEmpty() {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}
	for _, l := range snap.Lines() {
		fmt.Fprintf(s.out, "%4d  %-28s x%-3d %s\n", l.Product.ID, l.Product.Name, l.Quantity, s.ctrl.FormatPrice(l.Total()))
	}
	fmt.Fprintf(s.out, "%d lines, total: %s\n", snap.Len(), s.ctrl.CartSummary())
}

func (s *Shell) printCartJSON() {
	buf, err := json.MarshalIndent(s.ctrl.Cart.Snapshot(), "", "  ")
	if err != nil {
		fmt.Fprintf(s.out, "! encode cart: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, string(buf))
}

func (s *Shell) printReviews(reviews []domain.Review) {
	if len(reviews) == 0 {
		fmt.Fprintln(s.out, "no reviews")
		return
	}
	for _, r := range reviews {
		fmt.Fprintf(s.out, "%4d  %s %-16s %s\n", r.ProductID, strings.Repeat("*", r.Rating), r.AuthorName, r.Comment)
	}
}

func (s *Shell) printDraft() {
	d := s.ctrl.Intake.Draft()
	fmt.Fprintf(s.out, "name: %s\nprice: %s\ncategory: %s\nimage: %s\ndescription: %s\n",
		d.Name, d.Price, d.Category, d.Image, d.Description)
}
