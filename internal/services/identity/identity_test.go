package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-portal/internal/decode"
	"github.com/magabrotheeeer/subscription-portal/internal/models"
	"github.com/magabrotheeeer/subscription-portal/internal/stickyio"
)

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, path string, body any) (decode.Document, error) {
	args := m.Called(ctx, path, body)
	if doc := args.Get(0); doc != nil {
		return doc.(decode.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var testDates = DateRange{Start: "01/01/2020", End: "12/31/2025"}

func lookupResponse(total, ids, orderList string) decode.Document {
	return decode.Document{
		"response_code":   "100",
		"total_customers": total,
		"customer_ids":    ids,
		"data": map[string]any{
			"C1": map[string]any{
				"order_count": "2",
				"order_list":  orderList,
				"first_name":  "A",
				"last_name":   "B",
				"email":       "a@b.com",
			},
		},
	}
}

func TestResolver_ResolveCustomer(t *testing.T) {
	wantReq := stickyio.NewCustomerFindRequest("a@b.com", "12345", testDates.Start, testDates.End)

	tests := []struct {
		name      string
		setupMock func(m *MockPoster)
		want      models.Customer
		wantErr   error
		wantAPI   bool
		wantTrans bool
	}{
		{
			name: "single match",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("1", "C1", "101,102"), nil).Once()
			},
			want: models.Customer{
				CustomerID: "C1",
				OrderCount: 2,
				Orders:     []string{"101", "102"},
				FirstName:  "A",
				LastName:   "B",
				Email:      "a@b.com",
			},
		},
		{
			name: "single order id",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("1", "C1", "101"), nil).Once()
			},
			want: models.Customer{
				CustomerID: "C1",
				OrderCount: 2,
				Orders:     []string{"101"},
				FirstName:  "A",
				LastName:   "B",
				Email:      "a@b.com",
			},
		},
		{
			name: "no matches",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("0", "", ""), nil).Once()
			},
			wantErr: ErrAmbiguousOrNotFound,
		},
		{
			name: "several matches",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("3", "C1,C2,C3", "101"), nil).Once()
			},
			wantErr: ErrAmbiguousOrNotFound,
		},
		{
			name: "unparseable total",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("one", "C1", "101"), nil).Once()
			},
			wantErr: ErrAmbiguousOrNotFound,
		},
		{
			name: "api error code",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(decode.Document{"response_code": "342"}, nil).Once()
			},
			wantAPI: true,
		},
		{
			name: "transport error",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(nil, &stickyio.TransportError{Path: stickyio.PathCustomerFind, Err: errors.New("connection refused")}).Once()
			},
			wantTrans: true,
		},
		{
			name: "record missing from data",
			setupMock: func(m *MockPoster) {
				m.On("Post", mock.Anything, stickyio.PathCustomerFind, wantReq).
					Return(lookupResponse("1", "C9", "101"), nil).Once()
			},
			wantErr: stickyio.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockPoster)
			tt.setupMock(client)

			resolver := NewResolver(client, testDates, newNoopLogger())
			got, err := resolver.ResolveCustomer(context.Background(), "a@b.com", "12345")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, models.Customer{}, got)
			case tt.wantAPI:
				var apiErr *stickyio.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "342", apiErr.Code)
			case tt.wantTrans:
				var transportErr *stickyio.TransportError
				require.True(t, errors.As(err, &transportErr))
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			client.AssertExpectations(t)
		})
	}
}

func TestResolver_OrdersMatchTokenCount(t *testing.T) {
	for _, list := range []string{"1", "1,2", "1,2,3,4,5", "7,,8"} {
		client := new(MockPoster)
		client.On("Post", mock.Anything, stickyio.PathCustomerFind, mock.Anything).
			Return(lookupResponse("1", "C1", list), nil).Once()

		got, err := NewResolver(client, testDates, newNoopLogger()).ResolveCustomer(context.Background(), "a@b.com", "1")
		require.NoError(t, err)

		tokens := 1
		for _, r := range list {
			if r == ',' {
				tokens++
			}
		}
		assert.Len(t, got.Orders, tokens, "order list %q", list)
	}
}
