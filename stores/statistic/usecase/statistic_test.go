package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/color-xyz/goapi/base/ctx"
	"github.com/color-xyz/goapi/domain"
	"github.com/color-xyz/goapi/domain/statistic"
	mStatistic "github.com/color-xyz/goapi/domain/statistic/mocks"
)

func TestGet(t *testing.T) {
	repo := &mStatistic.Repo{}
	repo.On("FindOne", mock.Anything, statistic.TotalSales).Return(&statistic.Statistic{
		Key:   statistic.TotalSales,
		Value: "7",
	}, nil)

	u := New(repo)
	v, err := u.Get(ctx.Background(), statistic.TotalSales)
	assert.NoError(t, err)
	assert.Equal(t, "7", v)
}

func TestAddBigInt(t *testing.T) {
	repo := &mStatistic.Repo{}
	repo.On("FindOne", mock.Anything, statistic.TotalVolume).Return(&statistic.Statistic{
		Key:   statistic.TotalVolume,
		Value: "1000000000000000000",
	}, nil)
	repo.On("Upsert", mock.Anything, &statistic.Statistic{
		Key:   statistic.TotalVolume,
		Value: "3000000000000000000",
	}).Return(nil)

	u := New(repo)
	assert.NoError(t, u.AddBigInt(ctx.Background(), statistic.TotalVolume, "2000000000000000000"))
	repo.AssertExpectations(t)
}

func TestAddBigIntFromZero(t *testing.T) {
	repo := &mStatistic.Repo{}
	repo.On("FindOne", mock.Anything, statistic.TotalSales).Return(nil, domain.ErrNotFound)
	repo.On("Upsert", mock.Anything, &statistic.Statistic{
		Key:   statistic.TotalSales,
		Value: "1",
	}).Return(nil)

	u := New(repo)
	assert.NoError(t, u.AddBigInt(ctx.Background(), statistic.TotalSales, "1"))
	repo.AssertExpectations(t)
}

func TestAddBigIntRejectsGarbage(t *testing.T) {
	u := New(&mStatistic.Repo{})
	assert.ErrorIs(t, u.AddBigInt(ctx.Background(), statistic.TotalSales, "one"), domain.ErrInvalidNumberFormat)
}
