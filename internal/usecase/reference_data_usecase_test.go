package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/stockledger/internal/domain"
	"github.com/iho/stockledger/internal/usecase"
	"github.com/iho/stockledger/internal/usecase/mocks"
)

func TestReferenceDataUseCase_CreateReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   usecase.CreateReasonInput
		wantErr error
	}{
		{
			name:  "credit transfer",
			input: usecase.CreateReasonInput{Name: "Transfer In", Type: "credit", Category: "transfer"},
		},
		{
			name:    "blank name",
			input:   usecase.CreateReasonInput{Name: " ", Type: domain.ReasonTypeDebit},
			wantErr: domain.ErrInvalidReasonName,
		},
		{
			name:    "unknown type",
			input:   usecase.CreateReasonInput{Name: "Odd", Type: "SIDEWAYS"},
			wantErr: domain.ErrInvalidReasonType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reasons := mocks.NewFakeReasonRepository()
			uc := usecase.NewReferenceDataUseCase(reasons, mocks.NewFakeNodeRepository(), mocks.NewFakeIDGenerator("reason"), mocks.NewFakeClock(testNow))

			reason, err := uc.CreateReason(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.ReasonTypeCredit, reason.Type)
			assert.Equal(t, domain.ReasonCategoryTransfer, reason.Category)
			assert.True(t, reason.IsCredit())

			got, err := uc.GetReason(context.Background(), reason.ID)
			require.NoError(t, err)
			assert.Same(t, reason, got)
		})
	}
}

func TestReferenceDataUseCase_CreateNode(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	nodes := mocks.NewMockNodeRepository(ctrl)
	nodes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *domain.Node) error {
		assert.Equal(t, "WH-A", n.Code)
		assert.Equal(t, "node-1", n.ID)
		return nil
	})

	uc := usecase.NewReferenceDataUseCase(mocks.NewFakeReasonRepository(), nodes, mocks.NewFakeIDGenerator("node"), nil)

	node, err := uc.CreateNode(context.Background(), usecase.CreateNodeInput{Code: " WH-A ", Name: "Warehouse A", IsRefDataFacility: true})
	require.NoError(t, err)
	assert.True(t, node.IsRefDataFacility)

	_, err = uc.CreateNode(context.Background(), usecase.CreateNodeInput{Code: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidNodeCode)
}

func TestReferenceDataUseCase_ListClampsPage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reasons := mocks.NewMockReasonRepository(ctrl)
	nodes := mocks.NewMockNodeRepository(ctrl)
	reasons.EXPECT().List(gomock.Any(), 100, 0).Return([]*domain.Reason{domain.PhysicalCredit()}, nil)
	nodes.EXPECT().List(gomock.Any(), 20, 5).Return(nil, nil)

	uc := usecase.NewReferenceDataUseCase(reasons, nodes, mocks.NewFakeIDGenerator("x"), nil)

	got, err := uc.ListReasons(context.Background(), 1000, -1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = uc.ListNodes(context.Background(), 0, 5)
	require.NoError(t, err)
}
