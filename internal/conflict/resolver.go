// Package conflict implements the duplicate detection and quantity merging
// rules used when concurrently-added items collide by name. All functions
// are pure: no I/O, no side effects.
package conflict

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nickers/quickshop/models"
)

// NoQuantityPlaceholder is the glyph rendered when an item has no quantity.
// It is treated as equivalent to an absent quantity everywhere.
const NoQuantityPlaceholder = "—"

// maxSafeInteger is the largest integer magnitude that survives a round trip
// through a 64-bit float (2^53 - 1). Quantities beyond it are merged as text.
const maxSafeInteger = int64(1)<<53 - 1

var integerPattern = regexp.MustCompile(`^-?\d+$`)

func isEmptyQuantity(value *string) bool {
	return value == nil || *value == "" || *value == NoQuantityPlaceholder
}

// parseSafeInt parses value (trimmed) as a base-10 integer with an optional
// leading minus. Returns false when the value is not an integer or falls
// outside the safe-integer range.
func parseSafeInt(value string) (int64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !integerPattern.MatchString(trimmed) {
		return 0, false
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, false
	}
	if n > maxSafeInteger || n < -maxSafeInteger {
		return 0, false
	}
	return n, true
}

// MergeQuantity combines the quantities of two colliding items. Absent
// values (nil, empty, placeholder) are dropped; with nothing left the
// placeholder is returned, with one value left it is returned unchanged.
// When both parse as safe integers the result is their sum, otherwise the
// two texts are joined with "+", existing first.
func MergeQuantity(existing, added *string) string {
	parts := make([]string, 0, 2)
	for _, v := range []*string{existing, added} {
		if !isEmptyQuantity(v) {
			parts = append(parts, *v)
		}
	}

	if len(parts) == 0 {
		return NoQuantityPlaceholder
	}
	if len(parts) == 2 {
		a, okA := parseSafeInt(parts[0])
		b, okB := parseSafeInt(parts[1])
		if okA && okB {
			return strconv.FormatInt(a+b, 10)
		}
	}
	return strings.Join(parts, "+")
}

// FindDuplicate returns the first item whose name matches candidateName
// case-insensitively, ignoring bought items. Returns nil when no active
// item matches.
func FindDuplicate(items []models.Item, candidateName string) *models.Item {
	normalized := strings.ToLower(candidateName)
	for i := range items {
		if items[i].IsBought {
			continue
		}
		if strings.ToLower(items[i].Name) == normalized {
			return &items[i]
		}
	}
	return nil
}

// ComputeBulkConflicts partitions template items being imported into a list
// into name collisions and plain creates. Collisions are looked up through a
// lowercase-name index of the active list items; when several active items
// share a name the last one in iteration order wins, which mirrors plain map
// insertion. Both result slices preserve the candidate order.
func ComputeBulkConflicts(activeItems, candidates []models.Item, targetCollectionID string) models.BulkConflictResult {
	nameToExisting := make(map[string]models.Item, len(activeItems))
	for _, item := range activeItems {
		nameToExisting[strings.ToLower(item.Name)] = item
	}

	result := models.BulkConflictResult{
		Conflicts:      make([]models.BulkConflict, 0),
		NonConflicting: make([]models.CreateItemDTO, 0, len(candidates)),
	}

	for _, candidate := range candidates {
		dto := models.CreateItemDTO{
			CollectionID: targetCollectionID,
			Name:         candidate.Name,
			Quantity:     candidate.Quantity,
			Note:         candidate.Note,
			IsBought:     false,
			SortOrder:    candidate.SortOrder,
		}

		existing, ok := nameToExisting[strings.ToLower(candidate.Name)]
		if ok {
			result.Conflicts = append(result.Conflicts, models.BulkConflict{
				ExistingItem:      existing,
				NewItemCandidate:  dto,
				SuggestedQuantity: MergeQuantity(existing.Quantity, candidate.Quantity),
			})
		} else {
			result.NonConflicting = append(result.NonConflicting, dto)
		}
	}

	return result
}
