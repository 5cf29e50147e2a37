package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
	"github.com/sourcinglabs/supplier-finder/api/internal/service/extract"
	"github.com/sourcinglabs/supplier-finder/api/internal/service/scoring"
	"github.com/sourcinglabs/supplier-finder/api/internal/service/search"
)

// ErrEmptyPrompt rejects blank search prompts before any side effect.
var ErrEmptyPrompt = errors.New("prompt is required")

// conversationTitlePreviewLen caps the prompt prefix used in titles.
const conversationTitlePreviewLen = 30

// HTMLFetcher is the two-tier fetch chain the pipeline pulls pages
// through.
type HTMLFetcher interface {
	Fetch(ctx context.Context, targetURL string) (html string, ok bool)
}

// SupplierSearchResult is the orchestrator's answer for one prompt.
type SupplierSearchResult struct {
	Suppliers      []entity.Supplier
	TotalFound     int
	Cached         bool
	ConversationID uuid.UUID
	SearchDate     time.Time
	Message        string
}

// SupplierService runs the supplier discovery pipeline: cache check,
// search, sequential scrape of unique domains, scoring, persistence.
type SupplierService struct {
	results       repository.SupplierResultsRepository
	conversations repository.ConversationsRepository
	users         repository.UsersRepository
	gateway       search.Gateway
	fetcher       HTMLFetcher
	now           func() time.Time
}

// NewSupplierService wires the pipeline dependencies.
func NewSupplierService(
	results repository.SupplierResultsRepository,
	conversations repository.ConversationsRepository,
	users repository.UsersRepository,
	gateway search.Gateway,
	fetcher HTMLFetcher,
) *SupplierService {
	return &SupplierService{
		results:       results,
		conversations: conversations,
		users:         users,
		gateway:       gateway,
		fetcher:       fetcher,
		now:           time.Now,
	}
}

// FindSuppliers serves one prompt for one user. Repeat prompts are served
// from the persisted result set without re-scraping; a distinct prompt
// triggers at most one fresh scrape whose outcome is cached permanently.
func (s *SupplierService) FindSuppliers(ctx context.Context, userID uuid.UUID, prompt string) (*SupplierSearchResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	if cached, err := s.serveFromCache(ctx, userID, prompt); err == nil {
		return cached, nil
	} else if !errors.Is(err, repository.ErrResultSetNotFound) {
		return nil, err
	}

	log.Printf("supplier search user=%s prompt=%q cache=miss", userID, prompt)

	candidates, err := s.gateway.Search(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("search gateway: %w", err)
	}

	suppliers := s.scrapeCandidates(ctx, candidates)
	sort.SliceStable(suppliers, func(i, j int) bool {
		return suppliers[i].Rating > suppliers[j].Rating
	})

	searchDate := s.now()

	conversation := &entity.Conversation{
		UserID:      userID,
		Title:       supplierConversationTitle(prompt),
		Type:        entity.ConversationTypeSupplier,
		LastMessage: prompt,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	if len(suppliers) > 0 {
		set := &entity.SupplierResultSet{
			UserID:     userID,
			Prompt:     prompt,
			Suppliers:  suppliers,
			TotalFound: len(suppliers),
			SearchDate: searchDate,
		}
		if err := s.results.Create(ctx, set); err != nil {
			return nil, fmt.Errorf("persist supplier results: %w", err)
		}
		if err := s.appendResultsMessage(ctx, conversation, userID, prompt, suppliers, searchDate, false); err != nil {
			return nil, err
		}
	}

	if err := s.users.IncrementUsage(ctx, userID); err != nil {
		// A lost usage tick must not fail an otherwise complete search.
		log.Printf("increment usage user=%s error=%v", userID, err)
	}

	message := "Fresh search complete"
	if len(suppliers) == 0 {
		message = "No suppliers found"
	}

	return &SupplierSearchResult{
		Suppliers:      suppliers,
		TotalFound:     len(suppliers),
		Cached:         false,
		ConversationID: conversation.ID,
		SearchDate:     searchDate,
		Message:        message,
	}, nil
}

// serveFromCache returns the persisted result set for the exact
// (user, prompt) pair, creating the companion conversation when it is
// missing. repository.ErrResultSetNotFound signals a miss.
func (s *SupplierService) serveFromCache(ctx context.Context, userID uuid.UUID, prompt string) (*SupplierSearchResult, error) {
	set, err := s.results.FindByUserAndPrompt(ctx, userID, prompt)
	if err != nil {
		return nil, err
	}

	log.Printf("supplier search user=%s prompt=%q cache=hit", userID, prompt)

	conversation, err := s.conversations.FindSupplierByPrompt(ctx, userID, prompt)
	if errors.Is(err, repository.ErrConversationNotFound) {
		conversation = &entity.Conversation{
			UserID:      userID,
			Title:       supplierConversationTitle(prompt),
			Type:        entity.ConversationTypeSupplier,
			LastMessage: prompt,
		}
		if err := s.conversations.Create(ctx, conversation); err != nil {
			return nil, fmt.Errorf("create conversation: %w", err)
		}
		if err := s.appendResultsMessage(ctx, conversation, userID, prompt, set.Suppliers, set.SearchDate, true); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	return &SupplierSearchResult{
		Suppliers:      set.Suppliers,
		TotalFound:     set.TotalFound,
		Cached:         true,
		ConversationID: conversation.ID,
		SearchDate:     set.SearchDate,
		Message:        "Cached result returned",
	}, nil
}

// scrapeCandidates walks the gateway's candidates in order, visiting each
// hostname at most once. Per-domain failures skip that domain only.
func (s *SupplierService) scrapeCandidates(ctx context.Context, candidates []search.Result) []entity.Supplier {
	processed := make(map[string]struct{}, len(candidates))
	var suppliers []entity.Supplier

	for _, candidate := range candidates {
		if _, seen := processed[candidate.Hostname]; seen {
			continue
		}
		processed[candidate.Hostname] = struct{}{}

		siteURL, ok := normalizeOrigin(candidate.Hostname)
		if !ok {
			continue
		}

		html, ok := s.fetcher.Fetch(ctx, siteURL)
		if !ok {
			log.Printf("scrape url=%s skipped=fetch-failed", siteURL)
			continue
		}

		if supplier, ok := s.buildSupplier(html, siteURL, candidate.Snippet); ok {
			suppliers = append(suppliers, supplier)
		}
	}
	return suppliers
}

// buildSupplier runs the extractor family over one document and scores
// the outcome. Records with no contact signals are dropped.
func (s *SupplierService) buildSupplier(html, siteURL, snippet string) (entity.Supplier, bool) {
	emails := dedupeSignals(extract.Emails(html, siteURL))
	phones := dedupeSignals(extract.Phones(html, siteURL))
	whatsapps := dedupeSignals(extract.WhatsappLinks(html, siteURL))
	addresses := dedupeSignals(extract.Addresses(html, siteURL))

	contactInfoFound := len(emails) + len(phones) + len(whatsapps)
	if contactInfoFound == 0 {
		return entity.Supplier{}, false
	}

	cities := uniqueCities(addresses)
	location := "Location not specified"
	if len(cities) > 0 {
		location = cities[0]
	}

	return entity.Supplier{
		SellerName:          extract.SellerName(html),
		Website:             siteURL,
		Location:            location,
		Emails:              emails,
		Phones:              phones,
		Whatsapps:           whatsapps,
		Addresses:           addresses,
		ProductAvailability: extract.ProductAvailability(html, snippet),
		Rating:              scoring.Rating(len(emails), len(phones), len(whatsapps), len(addresses) > 0),
		ContactInfoFound:    contactInfoFound,
		Cities:              cities,
		LastUpdated:         s.now(),
	}, true
}

// appendResultsMessage records a synthetic assistant reply holding the
// structured results so the conversation view can replay them.
func (s *SupplierService) appendResultsMessage(ctx context.Context, conversation *entity.Conversation, userID uuid.UUID, prompt string, suppliers []entity.Supplier, searchDate time.Time, cached bool) error {
	payload, err := json.Marshal(map[string]any{
		"type":         "supplier_results",
		"totalResults": len(suppliers),
		"results":      suppliers,
		"searchDate":   searchDate,
		"cached":       cached,
	})
	if err != nil {
		return fmt.Errorf("marshal results message: %w", err)
	}

	message := &entity.ChatMessage{
		ConversationID: conversation.ID,
		UserID:         userID,
		UserMessage:    prompt,
		AIResponse:     string(payload),
	}
	if err := s.conversations.AppendMessage(ctx, message); err != nil {
		return fmt.Errorf("append results message: %w", err)
	}
	return nil
}

// normalizeOrigin turns a bare hostname into a fetchable origin URL.
func normalizeOrigin(hostname string) (string, bool) {
	raw := hostname
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}
	return parsed.Scheme + "://" + parsed.Host, true
}

func supplierConversationTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= conversationTitlePreviewLen {
		return "Supplier: " + prompt
	}
	return "Supplier: " + string(runes[:conversationTitlePreviewLen]) + "..."
}

// dedupeSignals collapses signals sharing a value, keeping first-seen
// order.
func dedupeSignals(signals []entity.ContactSignal) []entity.ContactSignal {
	if len(signals) == 0 {
		return nil
	}
	index := make(map[string]int, len(signals))
	var out []entity.ContactSignal
	for _, sig := range signals {
		if at, dup := index[sig.Value]; dup {
			out[at] = sig
			continue
		}
		index[sig.Value] = len(out)
		out = append(out, sig)
	}
	return out
}

func uniqueCities(addresses []entity.ContactSignal) []string {
	seen := make(map[string]struct{}, len(addresses))
	var cities []string
	for _, address := range addresses {
		if address.City == "" {
			continue
		}
		if _, dup := seen[address.City]; dup {
			continue
		}
		seen[address.City] = struct{}{}
		cities = append(cities, address.City)
	}
	return cities
}
