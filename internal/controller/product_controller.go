package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ayaxan7/seller-dashboard/internal/domain"
	"github.com/ayaxan7/seller-dashboard/internal/orchestrator"
	"github.com/ayaxan7/seller-dashboard/internal/projection"
	"github.com/ayaxan7/seller-dashboard/internal/service"
	"github.com/ayaxan7/seller-dashboard/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type ProductController struct {
	service service.ProductService
	blobs   service.BlobService
	deletes *orchestrator.DeleteTracker
}

func CreateProductController(e *echo.Group, svc service.ProductService, blobs service.BlobService, isLoggedIn echo.MiddlewareFunc) {
	c := ProductController{
		service: svc,
		blobs:   blobs,
		deletes: orchestrator.NewDeleteTracker(svc),
	}
	e.GET("/products", c.ListProducts, isLoggedIn)
	e.GET("/products/live", c.LiveProducts, isLoggedIn)
	e.GET("/products/:id", c.GetProduct, isLoggedIn)
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.PUT("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeleteProduct, isLoggedIn)
}

func (c *ProductController) ListProducts(e echo.Context) error {
	products, err := c.service.List(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if products == nil {
		products = []domain.Product{}
	}

	view := projection.BuildProductListView(products, c.deletes.Snapshot())

	return response.WriteSuccessResponse(e, "", view)
}

// LiveProducts streams the vendor's product set over SSE: one snapshot event
// per remote change, each carrying the full re-sorted set.
func (c *ProductController) LiveProducts(e echo.Context) error {
	e.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	e.Response().Header().Set("Cache-Control", "no-cache")
	e.Response().Header().Set("Connection", "keep-alive")
	e.Response().WriteHeader(http.StatusOK)

	snapshots, errc := c.service.Watch(e.Request().Context())

	for snapshots != nil || errc != nil {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}

			view := projection.BuildProductListView(snap, c.deletes.Snapshot())
			data, err := json.Marshal(view)
			if err != nil {
				log.Error().Err(err).Str("component", "LiveProducts").Msg("")
				continue
			}

			fmt.Fprintf(e.Response(), "event: snapshot\ndata: %s\n\n", data)
			e.Response().Flush()
		case err, ok := <-errc:
			if !ok {
				errc = nil
				continue
			}

			fmt.Fprintf(e.Response(), "event: error\ndata: %s\n\n", err.Error())
			e.Response().Flush()
		}
	}

	return nil
}

func (c *ProductController) GetProduct(e echo.Context) error {
	product, err := c.service.GetByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", product)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	add := orchestrator.NewAddOrchestrator(c.blobs, c.service)
	add.SetName(e.FormValue("name"))
	add.SetPrice(e.FormValue("price"))
	add.SetDescription(e.FormValue("description"))

	image, err := readFormImage(e)
	if err != nil {
		log.Error().Err(err).Str("component", "AddProduct").Msg("")
	}
	if image != nil {
		add.SelectImage(*image)
	}

	if err := add.Submit(e.Request().Context(), nil); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	snap := add.Snapshot()
	if snap.State != orchestrator.StateDone {
		return writeOrchestratorError(e, snap.State, snap.Error)
	}

	return response.WriteSuccessResponse(e, "", projection.BuildAddProductView(snap))
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	edit := orchestrator.NewEditOrchestrator(c.blobs, c.service)

	if err := edit.Load(e.Request().Context(), e.Param("id")); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if name := e.FormValue("name"); name != "" {
		edit.SetName(name)
	}
	if price := e.FormValue("price"); price != "" {
		edit.SetPrice(price)
	}
	if description := e.FormValue("description"); description != "" {
		edit.SetDescription(description)
	}

	image, err := readFormImage(e)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateProduct").Msg("")
	}
	if image != nil {
		edit.SelectImage(*image)
	}

	if err := edit.Submit(e.Request().Context(), nil); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	snap := edit.Snapshot()
	if snap.State != orchestrator.StateDone {
		return writeOrchestratorError(e, snap.State, snap.Error)
	}

	return response.WriteSuccessResponse(e, "", projection.BuildEditProductView(snap))
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	id := e.Param("id")

	product, err := c.service.GetByID(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err := c.deletes.Delete(e.Request().Context(), id, product.ImageURL); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	snap := c.deletes.Snapshot()
	if snap.Error != "" {
		return writeOrchestratorError(e, orchestrator.StateFailed, snap.Error)
	}

	return response.WriteSuccessResponse(e, snap.SuccessMessage, nil)
}

// readFormImage pulls the optional multipart image file off the request.
func readFormImage(e echo.Context) (*orchestrator.ImageRef, error) {
	fileHeader, err := e.FormFile("image")
	if err != nil {
		// no image attached
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &orchestrator.ImageRef{Filename: fileHeader.Filename, Data: data}, nil
}

// Orchestrator outcomes live in the machine's error slot rather than Go
// errors; map them onto status codes at the HTTP edge.
func writeOrchestratorError(e echo.Context, state orchestrator.State, msg string) error {
	status := http.StatusBadGateway
	if state == orchestrator.StateInvalidInput {
		status = http.StatusBadRequest
	}

	return e.JSON(status, response.ErrorResponse{
		Status:  "error",
		Message: msg,
	})
}
