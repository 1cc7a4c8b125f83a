package domain

import "sort"

// SortCategories orders categories by SortOrder, then Name.
func SortCategories(cats []MenuCategory) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].Name < cats[j].Name
	})
}
