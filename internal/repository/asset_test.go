package repository

import "testing"

// TestBuildAssetWhere проверяет сборку WHERE-условия и нумерацию аргументов.
func TestBuildAssetWhere(t *testing.T) {
	status := "active"
	tag := "spring"
	createdBy := "sa_importer"

	tests := []struct {
		name      string
		filters   AssetListFilters
		wantWhere string
		wantArgs  int
	}{
		{"без фильтров", AssetListFilters{}, "", 0},
		{"только статус", AssetListFilters{Status: &status}, "WHERE status = $1", 1},
		{
			"статус и created_by",
			AssetListFilters{Status: &status, CreatedBy: &createdBy},
			"WHERE status = $1 AND created_by = $2",
			2,
		},
		{
			"все фильтры",
			AssetListFilters{Status: &status, Tag: &tag, CreatedBy: &createdBy},
			"WHERE status = $1 AND tags @> jsonb_build_array(jsonb_build_object('value', $2::text)) AND created_by = $3",
			3,
		},
		{
			"только тег",
			AssetListFilters{Tag: &tag},
			"WHERE tags @> jsonb_build_array(jsonb_build_object('value', $1::text))",
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildAssetWhere(tt.filters, 1)
			if where != tt.wantWhere {
				t.Errorf("where = %q, ожидалось %q", where, tt.wantWhere)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, ожидалось %d", len(args), tt.wantArgs)
			}
		})
	}
}
