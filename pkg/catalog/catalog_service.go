package catalog

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"resq-food-backend/domain"
	"resq-food-backend/internal/utils/cache"
	"sort"
	"strings"
	"time"
)

type (
	CatalogService interface {
		GetCatalog(ctx context.Context, query domain.CatalogQuery) ([]domain.CatalogItemResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		cache             cache.Cache
	}
)

// NewCatalogService builds the catalog reader. A nil cache disables the
// snapshot cache and every request goes straight to the database.
func NewCatalogService(catalogRepository CatalogRepository, cache cache.Cache) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		cache:             cache,
	}
}

func (s *catalogService) GetCatalog(ctx context.Context, query domain.CatalogQuery) ([]domain.CatalogItemResponse, error) {
	rows, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if query.Search != "" {
		needle := strings.ToLower(query.Search)
		filtered := rows[:0]
		for _, row := range rows {
			if strings.Contains(strings.ToLower(row.Name), needle) ||
				strings.Contains(strings.ToLower(row.StoreName), needle) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if query.Category != "" {
		filtered := rows[:0]
		for _, row := range rows {
			if row.Category == query.Category {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	result := make([]domain.CatalogItemResponse, 0, len(rows))
	for _, row := range rows {
		item := domain.CatalogItemResponse{
			DiscountedItem: row,
			SalePrice:      row.Price * domain.DiscountRate,
		}
		if query.Latitude != nil && query.Longitude != nil &&
			row.Latitude != nil && row.Longitude != nil {
			d := haversineKm(*query.Latitude, *query.Longitude, *row.Latitude, *row.Longitude)
			item.DistanceKm = &d
		}
		result = append(result, item)
	}

	// In-stock listings always come first, nearest store breaks the tie.
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if (a.Stock > 0) != (b.Stock > 0) {
			return a.Stock > 0
		}
		return sortDistance(a) < sortDistance(b)
	})

	return result, nil
}

func (s *catalogService) loadSnapshot(ctx context.Context) ([]domain.DiscountedItem, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, cache.KeyCatalog); err == nil && ok {
			var rows []domain.DiscountedItem
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.catalogRepository.GetDiscountedItems(ctx, today())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, cache.KeyCatalog, string(encoded), cache.TTLCatalog); err != nil {
				log.Printf("failed to cache catalog snapshot: %v", err)
			}
		}
	}

	return rows, nil
}

func sortDistance(item domain.CatalogItemResponse) float64 {
	if item.DistanceKm == nil {
		return domain.UnknownDistance
	}
	return *item.DistanceKm
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371

	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
