package app

import (
	"context"
	"errors"

	"shamtool/internal/mapdb/domain"
	"shamtool/internal/shared/dbentity"
)

type MapService struct {
	repo  MapRepo
	store dbentity.Store
}

func NewMapService(repo MapRepo, store dbentity.Store) *MapService {
	return &MapService{
		repo:  repo,
		store: store,
	}
}

func (s *MapService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, asUnavailable(err, ReasonMapRepoUnavailable)
	}
	return n, nil
}

func (s *MapService) List(ctx context.Context, f domain.ListFilter) ([]*domain.CommonMap, error) {
	maps, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, asUnavailable(err, ReasonMapRepoUnavailable)
	}
	return maps, nil
}

// GetByCode loads the full common row of the map with mapCode.
func (s *MapService) GetByCode(ctx context.Context, mapCode int64) (*domain.CommonMap, error) {
	id, ok, err := s.repo.FindIDByMapCode(ctx, mapCode)
	if err != nil {
		return nil, asUnavailable(err, ReasonMapRepoUnavailable)
	}
	if !ok {
		return nil, ErrMapNotFound.WithData("mapcode", mapCode)
	}
	m := domain.NewCommonMap(s.store)
	m.ID = id
	if err := m.Load(ctx); err != nil {
		// deleted between the lookup and the load
		if errors.Is(err, dbentity.ErrNotFound) {
			return nil, ErrMapNotFound.WithData("mapcode", mapCode)
		}
		return nil, asUnavailable(err, ReasonMapLoadFail)
	}
	return m, nil
}

func (s *MapService) GetXML(ctx context.Context, mapCode int64) (string, error) {
	m, err := s.GetByCode(ctx, mapCode)
	if err != nil {
		return "", err
	}
	return m.XML, nil
}

func (s *MapService) GetDivinity(ctx context.Context, mapCode int64) (*domain.DivinityMap, error) {
	common, err := s.GetByCode(ctx, mapCode)
	if err != nil {
		return nil, err
	}
	m := domain.NewDivinityMap(common)
	if err := s.loadCategory(ctx, m.Persistent, mapCode, "divinity"); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MapService) GetSpiritual(ctx context.Context, mapCode int64) (*domain.SpiritualMap, error) {
	common, err := s.GetByCode(ctx, mapCode)
	if err != nil {
		return nil, err
	}
	m := domain.NewSpiritualMap(common)
	if err := s.loadCategory(ctx, m.Persistent, mapCode, "spiritual"); err != nil {
		return nil, err
	}
	return m, nil
}

// loadCategory reads only the category row; the common row is already loaded.
func (s *MapService) loadCategory(ctx context.Context, p *dbentity.Persistent, mapCode int64, category string) error {
	err := p.Load(ctx)
	if errors.Is(err, dbentity.ErrNotFound) {
		return ErrMapNotInCategory.WithData("mapcode", mapCode).WithData("category", category)
	}
	if err != nil {
		return asUnavailable(err, ReasonMapLoadFail)
	}
	return nil
}

// resolveCommon returns the stored map with in.MapCode, or a new one, with in
// staged on it.
func (s *MapService) resolveCommon(ctx context.Context, in domain.CommonInput) (*domain.CommonMap, error) {
	id, ok, err := s.repo.FindIDByMapCode(ctx, in.MapCode)
	if err != nil {
		return nil, asUnavailable(err, ReasonMapRepoUnavailable)
	}
	m := domain.NewCommonMap(s.store)
	if ok {
		m.ID = id
		if err := m.Load(ctx); err != nil {
			return nil, asUnavailable(err, ReasonMapLoadFail)
		}
	}
	m.Apply(in)
	return m, nil
}

// RegisterDivinity creates or updates the map and its divinity row, then reads both back.
func (s *MapService) RegisterDivinity(ctx context.Context, common domain.CommonInput, in domain.DivinityInput) (*domain.DivinityMap, error) {
	cm, err := s.resolveCommon(ctx, common)
	if err != nil {
		return nil, err
	}
	m := domain.NewDivinityMap(cm)
	m.Apply(in)
	if err := m.Sync(ctx); err != nil {
		return nil, asUnavailable(err, ReasonMapSaveFail)
	}
	return m, nil
}

// RegisterSpiritual creates or updates the map and its spiritual row, then reads both back.
func (s *MapService) RegisterSpiritual(ctx context.Context, common domain.CommonInput, in domain.SpiritualInput) (*domain.SpiritualMap, error) {
	cm, err := s.resolveCommon(ctx, common)
	if err != nil {
		return nil, err
	}
	m := domain.NewSpiritualMap(cm)
	m.Apply(in)
	if err := m.Sync(ctx); err != nil {
		return nil, asUnavailable(err, ReasonMapSaveFail)
	}
	return m, nil
}
