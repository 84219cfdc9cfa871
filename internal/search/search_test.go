package search

import (
	"testing"

	"github.com/nurpe/supply-agreements/internal/model"
)

func view(id int64, supplier, supplierOrg, customer, customerOrg string) model.AgreementView {
	return model.AgreementView{
		ID: id,
		Supplier: model.UserView{
			Name:         supplier,
			Organization: model.Organization{Name: supplierOrg},
		},
		Customer: model.UserView{
			Name:         customer,
			Organization: model.Organization{Name: customerOrg},
		},
		Materials: []model.MaterialLine{},
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José Muñoz", "jose munoz"},
		{"  Göteborg  ", "goteborg"},
		{"PLAIN", "plain"},
		{"", ""},
		{"Łódź", "łodz"}, // Ł carries no combining mark, only the acute folds
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		field   string
		nonZero bool
	}{
		{"exact", "steel", "steel", true},
		{"substring", "steel", "northern steel group", true},
		{"single char never substrings", "s", "northern steel group", false},
		{"typo within floor", "stel", "steel", true},
		{"unrelated", "quartz", "northern steel group", false},
		{"empty field", "steel", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := similarity(Fold(tt.query), Fold(tt.field))
			if tt.nonZero && got <= 0 {
				t.Fatalf("similarity(%q, %q) = %v, want > 0", tt.query, tt.field, got)
			}
			if !tt.nonZero && got != 0 {
				t.Fatalf("similarity(%q, %q) = %v, want 0", tt.query, tt.field, got)
			}
		})
	}

	if exact := similarity("steel", "steel"); exact != 1 {
		t.Fatalf("exact match must score 1, got %v", exact)
	}
	sub := similarity("steel", "northern steel group")
	if sub >= 1 {
		t.Fatalf("substring must score below exact, got %v", sub)
	}
}

func TestRankOrdersByWeightedScore(t *testing.T) {
	ranker := NewRanker(0.3)

	views := []model.AgreementView{
		view(1, "Dana Willis", "Mercado Central", "Steelman Trading", "Riverside"),
		view(2, "Steel Supplier", "Ore Logistics", "Dana Willis", "Harbor"),
	}

	// "steel" hits agreement 2 at supplier-name weight and agreement 1 only
	// at customer-name weight, so 2 must rank first.
	ranked := ranker.Rank("steel", views)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 results, got %d", len(ranked))
	}
	if ranked[0].ID != 2 || ranked[1].ID != 1 {
		t.Fatalf("unexpected order: %d, %d", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankDiacriticAndCaseInsensitive(t *testing.T) {
	ranker := NewRanker(0.3)
	views := []model.AgreementView{
		view(1, "José Muñoz", "Acero S.A.", "Dana Willis", "Riverside"),
	}

	for _, query := range []string{"MUNOZ", "muñoz", "José", "jose"} {
		ranked := ranker.Rank(query, views)
		if len(ranked) != 1 {
			t.Fatalf("query %q: expected 1 result, got %d", query, len(ranked))
		}
	}
}

func TestRankMatchesMaterialsAndStatus(t *testing.T) {
	ranker := NewRanker(0.3)
	status := "active"
	v := view(1, "Dana Willis", "Riverside", "Omar Aliyev", "Harbor")
	v.Status = &status
	v.Materials = []model.MaterialLine{
		{Material: model.Material{Name: "Copper wire"}, Amount: 3},
	}
	v.SupplierWarehouse = model.Warehouse{Name: "Central Yard"}
	v.CustomerWarehouse = model.Warehouse{Name: "East Depot"}

	for _, query := range []string{"copper", "active", "depot", "central"} {
		ranked := ranker.Rank(query, []model.AgreementView{v})
		if len(ranked) != 1 {
			t.Fatalf("query %q: expected a hit", query)
		}
	}
}

func TestRankNoMatchReturnsEmpty(t *testing.T) {
	ranker := NewRanker(0.3)
	views := []model.AgreementView{
		view(1, "Dana Willis", "Riverside", "Omar Aliyev", "Harbor"),
	}

	ranked := ranker.Rank("xylophone", views)
	if ranked == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(ranked) != 0 {
		t.Fatalf("expected no results, got %d", len(ranked))
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"steel", "steel", 0},
		{"steel", "stel", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein([]rune(tt.a), []rune(tt.b)); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
