package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func newMockGameRepo(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockGameRepo {
	m := &mockGameRepo{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockGameRepo) Save(ctx context.Context, game *entity.Game) (string, error) {
	args := m.Called(ctx, game)
	return args.String(0), args.Error(1)
}

func (m *mockGameRepo) Update(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameRepo) Load(ctx context.Context, id string) (*entity.Game, error) {
	args := m.Called(ctx, id)

	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (m *mockGameRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockWinNotifier struct {
	mock.Mock
}

func newMockWinNotifier(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockWinNotifier {
	m := &mockWinNotifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockWinNotifier) AnnounceWin(ctx context.Context, game *entity.Game, winner entity.Player) error {
	args := m.Called(ctx, game, winner)
	return args.Error(0)
}

type mockBotService struct {
	mock.Mock
}

func newMockBotService(t interface {
	mock.TestingT
	Cleanup(func())
},
) *mockBotService {
	m := &mockBotService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockBotService) MakeTurn(controller *checkers.Controller) ([]*checkers.Outcome, error) {
	args := m.Called(controller)

	outcomes, _ := args.Get(0).([]*checkers.Outcome)

	return outcomes, args.Error(1)
}
