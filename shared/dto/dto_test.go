package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/model"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":      "2",
				"limit":     "20",
				"sortBy":    "room_number",
				"sortOrder": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:      2,
				Limit:     20,
				SortBy:    "room_number",
				SortOrder: "asc",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   constant.DefaultValuePage,
				Limit:  constant.DefaultValueLimit,
				SortBy: constant.DefaultValueSortBy,
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   constant.DefaultValuePage,
				Limit:  constant.DefaultValueLimit,
				SortBy: constant.DefaultValueSortBy,
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:   constant.DefaultValuePage,
				Limit:  constant.DefaultValueLimit,
				SortBy: constant.DefaultValueSortBy,
			},
		},
		{
			name: "with duration ordering",
			queryParams: map[string]string{
				"orderBy": "Longest",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				OrderBy: dto.OrderByLongest,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.queryParams {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}

func TestQueryParams_SortDir(t *testing.T) {
	tests := []struct {
		name      string
		sortOrder string
		expected  string
	}{
		{
			name:      "ascending",
			sortOrder: "asc",
			expected:  dto.SortDirAsc,
		},
		{
			name:      "descending",
			sortOrder: "desc",
			expected:  dto.SortDirDesc,
		},
		{
			name:      "empty defaults to descending",
			sortOrder: "",
			expected:  dto.SortDirDesc,
		},
		{
			name:      "garbage defaults to descending",
			sortOrder: "sideways",
			expected:  dto.SortDirDesc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := dto.QueryParams{SortOrder: tt.sortOrder}

			if got := params.SortDir(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestQueryParams_DurationOrder(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected string
		ok       bool
	}{
		{
			name:     "longest via orderBy",
			params:   dto.QueryParams{OrderBy: dto.OrderByLongest},
			expected: dto.OrderByLongest,
			ok:       true,
		},
		{
			name:     "shortest via sortOrder",
			params:   dto.QueryParams{SortOrder: dto.OrderByShortest},
			expected: dto.OrderByShortest,
			ok:       true,
		},
		{
			name:   "plain column sort is not a duration order",
			params: dto.QueryParams{SortBy: "created_at", SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.params.DurationOrder()

			if ok != tt.ok {
				t.Fatalf("expected ok to be %v, got %v", tt.ok, ok)
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group produces no clause", func(t *testing.T) {
		group := dto.FilterGroup{}

		where, args := group.GetWhereClause()

		if where != "" {
			t.Errorf("expected empty clause, got %q", where)
		}

		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("single eq filter", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "status", Value: "Pending", Operator: dto.FilterOperatorEq, Table: "bookings"},
			},
		}

		where, args := group.GetWhereClause()

		if where != "(bookings.status = :status)" {
			t.Errorf("unexpected clause %q", where)
		}

		if args["status"] != "Pending" {
			t.Errorf("expected status arg, got %v", args)
		}
	})

	t.Run("range filters use arg names", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "price", ArgName: "min_price", Value: 100.0, Operator: dto.FilterOperatorGreaterEq, Table: "rooms"},
				dto.Filter{Field: "price", ArgName: "max_price", Value: 300.0, Operator: dto.FilterOperatorLessEq, Table: "rooms"},
			},
		}

		where, args := group.GetWhereClause()

		if where != "(rooms.price >= :min_price AND rooms.price <= :max_price)" {
			t.Errorf("unexpected clause %q", where)
		}

		if args["min_price"] != 100.0 || args["max_price"] != 300.0 {
			t.Errorf("unexpected args %v", args)
		}
	})

	t.Run("not in filter expands slices", func(t *testing.T) {
		group := dto.FilterGroup{
			Filters: []any{
				dto.Filter{Field: "status", Value: []string{"Cancelled", "Failed"}, Operator: dto.FilterOperatorNotIn, Table: "bookings"},
			},
		}

		where, args := group.GetWhereClause()

		if where != "(bookings.status NOT IN (:status_0, :status_1) )" {
			t.Errorf("unexpected clause %q", where)
		}

		if args["status_0"] != "Cancelled" || args["status_1"] != "Failed" {
			t.Errorf("unexpected args %v", args)
		}
	})
}
