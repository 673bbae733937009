package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"hotelier/shared/cache"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func ConvertStringToInt(value string) (int, error) {
	return strconv.Atoi(value)
}

func ConvertStringToFloat(value string) (float64, error) {
	return strconv.ParseFloat(value, 64)
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// PageWindow slices the requested page out of an already filtered and sorted
// set. Listings that sort on derived fields page in memory through this.
func PageWindow[T any](items []T, page, limit int) []T {
	if page < 1 || limit < 1 {
		return items
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// NormalizeName lowercases a display name and strips all whitespace. The
// result is stored alongside the name and recomputed on every name change.
func NormalizeName(name string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// FuzzyMatch reports whether every character of the query appears somewhere
// in the target, case-insensitively and independent of order. "jndoe"
// matches "John Doe"; it does not match "Alice Smith".
func FuzzyMatch(query, target string) bool {
	target = strings.ToLower(target)

	for _, r := range strings.ToLower(query) {
		if !strings.ContainsRune(target, r) {
			return false
		}
	}

	return true
}

// TransformFields converts the set fields of a patch struct into a map of
// updated columns. Zero-valued fields are left out entirely, so absent parts
// of a partial update never touch the stored record.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[fieldName] = field.Elem().Interface()

			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func FilterByField(value any, field, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	raw, err := json.Marshal(map[string]any{
		"params": params,
		"where":  where,
		"args":   args,
	})
	if err != nil {
		return fmt.Sprintf("%s:%d:%d", prefix, params.Page, params.Limit)
	}

	h := fnv.New64a()
	_, _ = h.Write(raw)

	return fmt.Sprintf("%s:%x", prefix, h.Sum64())
}

func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+"*"); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
