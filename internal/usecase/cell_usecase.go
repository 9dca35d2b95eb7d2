package usecase

import (
	"context"

	"RideHexmap-App/internal/domain/helper"
	"RideHexmap-App/internal/domain/model"
	"RideHexmap-App/internal/domain/service"
)

type CellUseCase interface {
	// Boundary セルの境界と中心を返す
	Boundary(ctx context.Context, cell string) (*model.CellBoundaryResponse, error)

	// Index 座標を含むセルを返す
	Index(ctx context.Context, lat, lng float64, resolution int) (*model.CellBoundaryResponse, error)

	// Parent より粗い解像度の祖先セルを返す
	Parent(ctx context.Context, cell string, resolution int) (*model.CellBoundaryResponse, error)
}

type cellUseCaseImpl struct {
	binner service.HexBinner
}

// NewCellUseCase は新しいCellUseCaseインスタンスを作成
func NewCellUseCase(binner service.HexBinner) CellUseCase {
	return &cellUseCaseImpl{binner: binner}
}

func (u *cellUseCaseImpl) Boundary(ctx context.Context, cell string) (*model.CellBoundaryResponse, error) {
	c := model.HexCell(cell)
	ring, err := u.binner.BoundaryOf(c)
	if err != nil {
		return nil, err
	}
	center, err := u.binner.CenterOf(c)
	if err != nil {
		return nil, err
	}
	res, err := u.binner.ResolutionOf(c)
	if err != nil {
		return nil, err
	}

	return &model.CellBoundaryResponse{
		Cell:         c,
		Resolution:   res,
		Center:       center,
		Boundary:     ring,
		EdgeLengthKm: helper.MeanEdgeLengthKm(ring),
	}, nil
}

func (u *cellUseCaseImpl) Index(ctx context.Context, lat, lng float64, resolution int) (*model.CellBoundaryResponse, error) {
	cell, err := u.binner.IndexOf(model.LatLng{Lat: lat, Lng: lng}, resolution)
	if err != nil {
		return nil, err
	}
	return u.Boundary(ctx, cell.String())
}

func (u *cellUseCaseImpl) Parent(ctx context.Context, cell string, resolution int) (*model.CellBoundaryResponse, error) {
	parent, err := u.binner.ParentOf(model.HexCell(cell), resolution)
	if err != nil {
		return nil, err
	}
	return u.Boundary(ctx, parent.String())
}
