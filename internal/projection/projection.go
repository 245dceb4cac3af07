// Package projection derives renderable view state from adapter and
// orchestrator output. Everything here is a pure function: no network, no
// storage, no clocks.
package projection

import (
	"fmt"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/internal/orchestrator"
)

type ProductRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	PriceLabel  string  `json:"priceLabel"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	IsDeleting  bool    `json:"isDeleting"`
}

type ProductListView struct {
	Rows           []ProductRow `json:"rows"`
	IsLoading      bool         `json:"isLoading"`
	SuccessMessage string       `json:"successMessage,omitempty"`
	Error          string       `json:"error,omitempty"`
}

// BuildProductListView merges the latest snapshot with per-row delete state.
// A nil product slice means the first snapshot has not arrived yet, which is
// distinct from an empty catalog. Rows already loaded stay renderable while a
// delete is in flight on one of them.
func BuildProductListView(products []domain.Product, del orchestrator.DeleteSnapshot) ProductListView {
	view := ProductListView{
		IsLoading:      products == nil,
		SuccessMessage: del.SuccessMessage,
		Error:          del.Error,
	}

	for _, p := range products {
		view.Rows = append(view.Rows, ProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			PriceLabel:  fmt.Sprintf("%.2f", p.Price),
			Description: p.Description,
			ImageURL:    p.ImageURL,
			IsDeleting:  del.DeletingIDs[p.ID],
		})
	}

	return view
}

type ProductFormView struct {
	ProductID       string `json:"productId,omitempty"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	Description     string `json:"description"`
	ImageSelected   bool   `json:"imageSelected"`
	CurrentImageURL string `json:"currentImageUrl,omitempty"`
	IsSubmitting    bool   `json:"isSubmitting"`
	Error           string `json:"error,omitempty"`
}

func BuildAddProductView(snap orchestrator.AddSnapshot) ProductFormView {
	return ProductFormView{
		ProductID:     snap.ProductID,
		Name:          snap.Name,
		Price:         snap.Price,
		Description:   snap.Description,
		ImageSelected: snap.ImageSelected,
		IsSubmitting:  snap.State.InFlight(),
		Error:         snap.Error,
	}
}

func BuildEditProductView(snap orchestrator.EditSnapshot) ProductFormView {
	return ProductFormView{
		ProductID:       snap.ProductID,
		Name:            snap.Name,
		Price:           snap.Price,
		Description:     snap.Description,
		ImageSelected:   snap.NewImage,
		CurrentImageURL: snap.CurrentImageURL,
		IsSubmitting:    snap.State.InFlight(),
		Error:           snap.Error,
	}
}
