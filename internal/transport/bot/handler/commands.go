package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/samber/lo"

	"mercado/internal/domain"
	"mercado/internal/domain/entity"
	"mercado/internal/domain/service/market"
	"mercado/internal/infrastructure/notifier"
	"mercado/internal/transport/bot/view"
	"mercado/pkg/errcodes"
)

// Telegram's maximum message length.
const messageWrapAt = 4096

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, view.StartMessage)
}

// OnSell publishes a sale: /sell "item name or uid" quantity price.
func (h *Handler) OnSell(ctx *th.Context, msg telego.Message) error {
	args := splitArgs(msg.Text)
	if len(args) < 4 {
		return h.send(ctx, msg.Chat.ID, view.SellUsage)
	}

	// Everything between the command and the two trailing numbers is the
	// item query, so unquoted multi-word names work too.
	itemQuery := strings.Join(args[1:len(args)-2], " ")

	quantity, qtyErr := strconv.ParseInt(args[len(args)-2], 10, 64)
	price, priceErr := strconv.ParseInt(args[len(args)-1], 10, 64)

	if qtyErr != nil || priceErr != nil {
		return h.send(ctx, msg.Chat.ID, view.SellInvalidNumber)
	}

	h.mu.Lock()
	sale, item, err := h.svc.Sell(ctx, market.SellArgs{
		Query:            itemQuery,
		Quantity:         quantity,
		Price:            price,
		Seller:           displayName(msg.From),
		SellerExternalID: msg.From.ID,
	})
	h.mu.Unlock()

	if err != nil {
		var ambiguous *market.AmbiguousMatchError
		switch {
		case errors.As(err, &ambiguous):
			candidates := lo.Map(ambiguous.Candidates, func(item entity.Item, _ int) string {
				return item.String()
			})

			return h.sendPartitioned(ctx, msg.Chat.ID,
				fmt.Sprintf(view.SellAmbiguous, itemQuery, "{"+strings.Join(candidates, ", ")+"}"))
		case domain.HasCode(err, errcodes.ItemNotFound):
			return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SellItemUnknown, itemQuery))
		case domain.HasCode(err, errcodes.InvalidSaleArguments):
			return h.send(ctx, msg.Chat.ID, view.SellInvalidNumber)
		default:
			logger(ctx).Error("sell failed", "query", itemQuery, "error", err)
			return h.send(ctx, msg.Chat.ID, view.InternalError)
		}
	}

	if err := h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SellAccepted, sale.Quantity, item.Name, sale.Price)); err != nil {
		return err
	}

	h.announce(ctx, notifier.Announcement{Sale: *sale, ItemName: item.Name})

	return nil
}

// OnBuy fulfills a sale and notifies both parties: /buy saleUid.
func (h *Handler) OnBuy(ctx *th.Context, msg telego.Message) error {
	args := splitArgs(msg.Text)
	if len(args) < 2 {
		return h.send(ctx, msg.Chat.ID, view.BuyUsage)
	}

	saleUID := args[1]

	h.mu.Lock()
	listing, err := h.svc.Buy(ctx, saleUID)
	h.mu.Unlock()

	if err != nil {
		if domain.HasCode(err, errcodes.SaleNotFound) {
			return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.BuyMiss, saleUID))
		}

		logger(ctx).Error("buy failed", "sale_uid", saleUID, "error", err)
		return h.send(ctx, msg.Chat.ID, view.InternalError)
	}

	sale, item := listing.Sale, listing.Item

	if err := h.send(ctx, msg.Chat.ID,
		fmt.Sprintf(view.BuyCongrats, sale.Quantity, item.Name, sale.Price, sale.Seller)); err != nil {
		return err
	}

	// The seller's external id doubles as their direct-message chat id.
	if err := h.send(ctx, sale.SellerExternalID,
		fmt.Sprintf(view.SellerSold, sale.Quantity, item.Name, sale.Price, displayName(msg.From))); err != nil {
		logger(ctx).Error("failed to notify seller", "sale_uid", sale.SaleUID, "error", err)
	}

	return nil
}

// OnList lists ongoing sales: /list [query].
func (h *Handler) OnList(ctx *th.Context, msg telego.Message) error {
	args := splitArgs(msg.Text)

	var (
		listings []market.Listing
		err      error
	)

	query := ""
	if len(args) > 1 {
		query = strings.Join(args[1:], " ")
		listings, err = h.svc.List(ctx, query)
	} else {
		listings, err = h.svc.ListAll(ctx)
	}

	if err != nil {
		logger(ctx).Error("list failed", "query", query, "error", err)
		return h.send(ctx, msg.Chat.ID, view.InternalError)
	}

	if len(listings) == 0 {
		if query == "" {
			return h.send(ctx, msg.Chat.ID, view.ListEmpty)
		}

		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.ListEmptyQuery, query))
	}

	header := view.ListHeader
	if query != "" {
		header = fmt.Sprintf(view.ListHeaderQuery, query)
	}

	if err := h.send(ctx, msg.Chat.ID, header); err != nil {
		return err
	}

	lines := lo.Map(listings, func(listing market.Listing, _ int) string {
		return listing.Sale.Summary(listing.Item.Name)
	})

	return h.sendPartitioned(ctx, msg.Chat.ID, strings.Join(lines, "\n"))
}

// OnSearch resolves a free-text or uid query against the catalog: /search query.
func (h *Handler) OnSearch(ctx *th.Context, msg telego.Message) error {
	args := splitArgs(msg.Text)
	if len(args) < 2 {
		return h.send(ctx, msg.Chat.ID, view.SearchUsage)
	}

	query := strings.Join(args[1:], " ")

	if h.svc.IsUID(query) {
		return h.replyUIDSearch(ctx, msg.Chat.ID, query)
	}

	start := time.Now()
	results := h.svc.SearchItems(query)
	elapsed := time.Since(start)

	if len(results) == 0 {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.SearchEmpty, query))
	}

	names := lo.Map(results, func(item entity.Item, _ int) string {
		return item.String()
	})

	return h.sendPartitioned(ctx, msg.Chat.ID,
		fmt.Sprintf(view.SearchResult, query, "{"+strings.Join(names, ", ")+"}", elapsed.Seconds()))
}

// OnUID looks an item up by uid: /uid query.
func (h *Handler) OnUID(ctx *th.Context, msg telego.Message) error {
	args := splitArgs(msg.Text)
	if len(args) < 2 {
		return h.send(ctx, msg.Chat.ID, view.SearchUsage)
	}

	return h.replyUIDSearch(ctx, msg.Chat.ID, args[1])
}

func (h *Handler) replyUIDSearch(ctx *th.Context, chatID int64, query string) error {
	start := time.Now()
	item, ok := h.svc.LookupUID(query)
	elapsed := time.Since(start)

	if !ok {
		return h.send(ctx, chatID, fmt.Sprintf(view.SearchEmpty, query))
	}

	return h.send(ctx, chatID,
		fmt.Sprintf(view.SearchResult, query, "["+item.String()+"]", elapsed.Seconds()))
}

// announce queues the sale for the announcement channel. The queue being full
// drops the announcement; publishing never fails a sale.
func (h *Handler) announce(ctx *th.Context, announcement notifier.Announcement) {
	if h.announcements == nil {
		return
	}

	select {
	case h.announcements <- announcement:
	default:
		logger(ctx).Warn("announcement queue full, dropping", "sale_uid", announcement.Sale.SaleUID)
	}
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err
}

// sendPartitioned splits long replies into chunks Telegram accepts, breaking
// on line boundaries where possible.
func (h *Handler) sendPartitioned(ctx *th.Context, chatID int64, text string) error {
	for _, chunk := range partition(text, messageWrapAt) {
		if err := h.send(ctx, chatID, chunk); err != nil {
			return err
		}
	}

	return nil
}

func partition(text string, wrapAt int) []string {
	if len(text) <= wrapAt {
		return []string{text}
	}

	var (
		chunks  []string
		current strings.Builder
	)

	for _, line := range strings.Split(text, "\n") {
		// A single oversized line is cut hard, but never inside a rune.
		for len(line) > wrapAt {
			cut := wrapAt
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}

			if cut == 0 {
				cut = wrapAt
			}

			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		if current.Len()+len(line)+1 > wrapAt {
			chunks = append(chunks, current.String())
			current.Reset()
		}

		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitArgs tokenizes a command line, keeping double-quoted spans together so
// multi-word item names survive: /sell "Daga de Plata" 2 100.
func splitArgs(text string) []string {
	var (
		args     []string
		current  strings.Builder
		inQuotes bool
	)

	flush := func() {
		if current.Len() > 0 {
			args = append(args, current.String())
			current.Reset()
		}
	}

	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			flush()
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			flush()
		default:
			current.WriteRune(r)
		}
	}

	flush()

	return args
}

func displayName(user *telego.User) string {
	if user == nil {
		return "unknown"
	}

	if user.Username != "" {
		return "@" + user.Username
	}

	return strings.TrimSpace(user.FirstName + " " + user.LastName)
}
