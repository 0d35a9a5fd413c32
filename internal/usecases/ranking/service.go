// Package ranking agrupa as vendas por material, vendedor e cliente e mantém as metas dos vendedores
package ranking

import (
	"context"
	"sort"
	"strings"

	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/internal/domain"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
)

const (
	topMaterials = 10

	unknownSeller   = "INDEFINIDO"
	unknownClient   = "CONSUMIDOR FINAL"
	unknownMaterial = "MATERIAL INDEFINIDO"

	// nome usado no ranking de materiais, igual ao padrão da importação
	rankingUnknownMaterial = "Indefinido"
)

// DetailKind diz se o detalhe é de um vendedor ou de um cliente
type DetailKind string

const (
	DetailSeller DetailKind = "seller"
	DetailClient DetailKind = "client"
)

type SellerOptions struct {
	// Seller restringe vendedores e clientes às vendas de um vendedor
	Seller string
	// WithGoals preenche meta e progresso; só faz sentido no filtro por mês
	WithGoals bool
}

type Ranker interface {
	MaterialRanking(ctx context.Context, ownerID int, filter domain.SalesFilter) (*domain.MaterialRanking, error)
	SellerAnalysis(ctx context.Context, ownerID int, filter domain.SalesFilter, opts SellerOptions) (*domain.SellerAnalysis, error)
	Detail(ctx context.Context, ownerID int, filter domain.SalesFilter, kind DetailKind, name string) ([]domain.MaterialDetail, error)
	ListGoals(ctx context.Context, ownerID int) ([]*domain.SellerGoal, error)
	SetGoal(ctx context.Context, ownerID int, sellerName string, value float64) (*domain.SellerGoal, error)
}

type Service struct {
	salesRepo repository.SalesRecordRepository
	goalRepo  repository.SellerGoalRepository
}

func NewService(salesRepo repository.SalesRecordRepository, goalRepo repository.SellerGoalRepository) *Service {
	return &Service{
		salesRepo: salesRepo,
		goalRepo:  goalRepo,
	}
}

// MaterialRanking devolve os 10 materiais de maior faturamento de cada categoria.
// A categoria do material é a da primeira venda encontrada.
func (s *Service) MaterialRanking(ctx context.Context, ownerID int, filter domain.SalesFilter) (*domain.MaterialRanking, error) {
	sales, err := s.listSales(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*domain.MaterialRankingItem)
	for _, sale := range sales {
		name := orDefault(sale.MaterialName, rankingUnknownMaterial)

		item, ok := stats[name]
		if !ok {
			item = &domain.MaterialRankingItem{Material: name, Category: sale.SaleType}
			stats[name] = item
		}
		item.Revenue += sale.Revenue
		item.AreaM2 += sale.AreaM2
		item.Count++
	}

	ranking := &domain.MaterialRanking{
		High: domain.MaterialGroup{Items: []domain.MaterialRankingItem{}},
		Low:  domain.MaterialGroup{Items: []domain.MaterialRankingItem{}},
	}
	for _, item := range stats {
		group := &ranking.Low
		if item.Category == domain.SaleClassHigh {
			group = &ranking.High
		}
		group.Items = append(group.Items, *item)
		group.TotalAreaM2 += item.AreaM2
		group.TotalCount += item.Count
	}

	for _, group := range []*domain.MaterialGroup{&ranking.High, &ranking.Low} {
		sortMaterials(group.Items)
		if len(group.Items) > topMaterials {
			group.Items = group.Items[:topMaterials]
		}
	}

	return ranking, nil
}

// SellerAnalysis monta o ranking de vendedores e os três rankings de clientes
func (s *Service) SellerAnalysis(ctx context.Context, ownerID int, filter domain.SalesFilter, opts SellerOptions) (*domain.SellerAnalysis, error) {
	sales, err := s.listSales(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	var goals map[string]float64
	if opts.WithGoals {
		goals, err = s.goalsByName(ctx, ownerID)
		if err != nil {
			return nil, err
		}
	}

	names := make(map[string]struct{})
	sellers := make(map[string]*domain.SellerStats)
	clients := make(map[string]*clientAccumulator)

	for _, sale := range sales {
		seller := orDefault(sale.SellerName, unknownSeller)
		names[seller] = struct{}{}

		if opts.Seller != "" && seller != opts.Seller {
			continue
		}

		st, ok := sellers[seller]
		if !ok {
			st = &domain.SellerStats{Name: seller}
			sellers[seller] = st
		}
		st.Revenue += sale.Revenue
		st.Cost += sale.Cost
		st.Freight += sale.Freight
		st.AreaM2 += sale.AreaM2
		st.Count++
		if sale.SaleType == domain.SaleClassHigh {
			st.RevenueHigh += sale.Revenue
			st.CountHigh++
		} else {
			st.RevenueLow += sale.Revenue
			st.CountLow++
		}

		client := orDefault(sale.ClientName, unknownClient)
		acc, ok := clients[client]
		if !ok {
			acc = &clientAccumulator{name: client}
			clients[client] = acc
		}
		acc.add(sale)
	}

	analysis := &domain.SellerAnalysis{
		SellerNames: sortedKeys(names),
		Sellers:     make([]domain.SellerStats, 0, len(sellers)),
		Clients: domain.ClientRankings{
			Total: []domain.ClientStats{},
			High:  []domain.ClientStats{},
			Low:   []domain.ClientStats{},
		},
	}

	for _, st := range sellers {
		st.Margin = Margin(st.Revenue, st.Cost, st.Freight)
		if opts.WithGoals {
			goal := goals[st.Name]
			progress := 0.0
			if goal > 0 {
				progress = st.Revenue / goal * 100
			}
			st.Goal = &goal
			st.Progress = &progress
		}
		analysis.Sellers = append(analysis.Sellers, *st)
	}
	sort.SliceStable(analysis.Sellers, func(i, j int) bool {
		if analysis.Sellers[i].Revenue != analysis.Sellers[j].Revenue {
			return analysis.Sellers[i].Revenue > analysis.Sellers[j].Revenue
		}
		return analysis.Sellers[i].Name < analysis.Sellers[j].Name
	})

	for _, acc := range clients {
		analysis.Clients.Total = append(analysis.Clients.Total, acc.total())
		if acc.high.revenue > 0 {
			analysis.Clients.High = append(analysis.Clients.High, acc.byClass(acc.high))
		}
		if acc.low.revenue > 0 {
			analysis.Clients.Low = append(analysis.Clients.Low, acc.byClass(acc.low))
		}
	}
	sortClients(analysis.Clients.Total)
	sortClients(analysis.Clients.High)
	sortClients(analysis.Clients.Low)

	return analysis, nil
}

// Detail lista os materiais vendidos por um vendedor ou comprados por um cliente,
// agrupados por (material, categoria)
func (s *Service) Detail(ctx context.Context, ownerID int, filter domain.SalesFilter, kind DetailKind, name string) ([]domain.MaterialDetail, error) {
	if kind != DetailSeller && kind != DetailClient {
		return nil, ErrInvalidDetailKind
	}

	sales, err := s.listSales(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		material string
		category domain.SaleClass
	}
	groups := make(map[groupKey]*domain.MaterialDetail)

	for _, sale := range sales {
		var owner string
		if kind == DetailSeller {
			owner = orDefault(sale.SellerName, unknownSeller)
		} else {
			owner = orDefault(sale.ClientName, unknownClient)
		}
		if owner != name {
			continue
		}

		key := groupKey{material: orDefault(sale.MaterialName, unknownMaterial), category: sale.SaleType}
		d, ok := groups[key]
		if !ok {
			d = &domain.MaterialDetail{Material: key.material, Category: key.category}
			groups[key] = d
		}
		d.Count++
		d.AreaM2 += sale.AreaM2
		d.Revenue += sale.Revenue
	}

	details := make([]domain.MaterialDetail, 0, len(groups))
	for _, d := range groups {
		details = append(details, *d)
	}
	sort.Slice(details, func(i, j int) bool {
		if details[i].Revenue != details[j].Revenue {
			return details[i].Revenue > details[j].Revenue
		}
		if details[i].Material != details[j].Material {
			return details[i].Material < details[j].Material
		}
		return details[i].Category < details[j].Category
	})

	return details, nil
}

func (s *Service) ListGoals(ctx context.Context, ownerID int) ([]*domain.SellerGoal, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	return s.goalRepo.List(ctx, ownerID)
}

// SetGoal grava a meta do vendedor; a chave é (dono, vendedor)
func (s *Service) SetGoal(ctx context.Context, ownerID int, sellerName string, value float64) (*domain.SellerGoal, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}

	sellerName = strings.TrimSpace(sellerName)
	if sellerName == "" {
		return nil, ErrMissingSeller
	}
	if value < 0 {
		return nil, ErrInvalidGoal
	}

	goal := &domain.SellerGoal{OwnerID: ownerID, SellerName: sellerName, GoalValue: value}
	if err := s.goalRepo.Upsert(ctx, goal); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":     ownerID,
		"seller_name": sellerName,
		"goal_value":  value,
	}).Info("Meta do vendedor atualizada")

	return goal, nil
}

// Margin é o lucro sobre o custo: (receita − frete − custo) / custo × 100, ou 0 sem custo
func Margin(revenue, cost, freight float64) float64 {
	if cost == 0 {
		return 0
	}
	return (revenue - freight - cost) / cost * 100
}

func (s *Service) listSales(ctx context.Context, ownerID int, filter domain.SalesFilter) ([]*domain.SalesRecord, error) {
	if ownerID <= 0 {
		return nil, ErrMissingOwner
	}
	return s.salesRepo.ListByOwner(ctx, ownerID, filter)
}

func (s *Service) goalsByName(ctx context.Context, ownerID int) (map[string]float64, error) {
	goals, err := s.goalRepo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]float64, len(goals))
	for _, g := range goals {
		byName[g.SellerName] = g.GoalValue
	}
	return byName, nil
}

type classTotals struct {
	revenue, cost, freight float64
}

type clientAccumulator struct {
	name      string
	all       classTotals
	high, low classTotals
	area      float64
	count     int
}

func (c *clientAccumulator) add(sale *domain.SalesRecord) {
	target := &c.low
	if sale.SaleType == domain.SaleClassHigh {
		target = &c.high
	}
	for _, t := range []*classTotals{&c.all, target} {
		t.revenue += sale.Revenue
		t.cost += sale.Cost
		t.freight += sale.Freight
	}
	c.area += sale.AreaM2
	c.count++
}

func (c *clientAccumulator) total() domain.ClientStats {
	return c.byClass(c.all)
}

func (c *clientAccumulator) byClass(t classTotals) domain.ClientStats {
	return domain.ClientStats{
		Name:        c.name,
		Revenue:     t.revenue,
		RevenueHigh: c.high.revenue,
		RevenueLow:  c.low.revenue,
		Cost:        t.cost,
		Freight:     t.freight,
		AreaM2:      c.area,
		Count:       c.count,
		Margin:      Margin(t.revenue, t.cost, t.freight),
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortMaterials(items []domain.MaterialRankingItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].Material < items[j].Material
	})
}

func sortClients(items []domain.ClientStats) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].Name < items[j].Name
	})
}
