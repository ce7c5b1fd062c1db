package public

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/restaurant-directory/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/restaurant-directory/api/internal/public/application"
	publicdomain "github.com/sngm3741/restaurant-directory/api/internal/public/domain"
)

const requestTimeout = 5 * time.Second

var notFoundResponse = common.ErrorResponse{Message: "Restaurant not found"}

func (h *Handler) restaurantSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		keyword := strings.TrimSpace(r.URL.Query().Get("q"))
		restaurants, err := h.restaurants.Search(ctx, keyword)
		if err != nil {
			h.logger.Printf("restaurant search failed q=%q err=%v", keyword, err)
			common.WriteServerError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildRestaurantResponses(restaurants))
	}
}

func (h *Handler) restaurantDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		restaurant, err := h.restaurants.Detail(ctx, idParam)
		h.writeRestaurant(w, restaurant, err, "id", idParam)
	}
}

func (h *Handler) restaurantByBusinessIDHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		restaurantID := strings.TrimSpace(chi.URLParam(r, "restaurantId"))
		restaurant, err := h.restaurants.DetailByRestaurantID(ctx, restaurantID)
		h.writeRestaurant(w, restaurant, err, "restaurant_id", restaurantID)
	}
}

func (h *Handler) restaurantListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()

		query := r.URL.Query()
		page, _ := common.ParsePositiveInt(query.Get("page"), 1)
		limit, _ := common.ParsePositiveInt(query.Get("limit"), publicapp.DefaultPageLimit)

		result, err := h.restaurants.List(ctx, publicapp.Paging{Page: page, Limit: limit})
		if err != nil {
			h.logger.Printf("restaurant list fetch failed page=%d limit=%d err=%v", page, limit, err)
			common.WriteServerError(h.logger, w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, restaurantListResponse{
			Page:       result.Page,
			TotalPages: result.TotalPages,
			Total:      result.Total,
			Data:       buildRestaurantResponses(result.Items),
		})
	}
}

func (h *Handler) writeRestaurant(w http.ResponseWriter, restaurant *publicdomain.Restaurant, err error, key, value string) {
	if err != nil {
		if errors.Is(err, publicapp.ErrNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, notFoundResponse)
			return
		}
		h.logger.Printf("restaurant detail fetch failed %s=%q err=%v", key, value, err)
		common.WriteServerError(h.logger, w, err)
		return
	}
	common.WriteJSON(h.logger, w, http.StatusOK, buildRestaurantResponse(*restaurant))
}
