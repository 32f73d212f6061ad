package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pizzaResponse = `{"meals":[{
	"idMeal":"53014","strMeal":"Pizza Express Margherita","strCategory":"Miscellaneous",
	"strArea":"Italian","strInstructions":"1 Preheat the oven.\r\n2 Knead the dough.",
	"strMealThumb":"https://www.themealdb.com/images/media/meals/x0lk931587671540.jpg",
	"strTags":"Pizza, ,Italian","strYoutube":"https://www.youtube.com/watch?v=Mt5lgUZRoUg",
	"strSource":null,
	"strIngredient1":"Water","strMeasure1":"150ml",
	"strIngredient2":"Sugar","strMeasure2":"1 tsp ",
	"strIngredient3":"","strMeasure3":" ",
	"strIngredient4":null,"strMeasure4":null
},{"idMeal":"2","strMeal":"Second"}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.MealDBConfig{BaseURL: srv.URL + "/"})
}

func TestSearchByName(t *testing.T) {
	t.Run("returns first match", func(t *testing.T) {
		var gotPath, gotQuery string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.Query().Get("s")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(pizzaResponse))
		})

		meal, err := client.SearchByName(context.Background(), "pizza express")
		require.NoError(t, err)
		require.NotNil(t, meal)

		assert.Equal(t, "/search.php", gotPath)
		assert.Equal(t, "pizza express", gotQuery)
		assert.Equal(t, "53014", meal.ID())
		assert.Equal(t, "Pizza Express Margherita", meal.Name())
		assert.Equal(t, "Italian", meal.Area())
		assert.Equal(t, "Miscellaneous", meal.Category())
		assert.Contains(t, meal.Instructions(), "Knead the dough.")
		assert.Equal(t, "https://www.themealdb.com/images/media/meals/x0lk931587671540.jpg", meal.Thumbnail())
		assert.Equal(t, []string{"Pizza", "Italian"}, meal.Tags())
		assert.Equal(t, "https://www.youtube.com/watch?v=Mt5lgUZRoUg", meal.Youtube())
		assert.Empty(t, meal.Source())

		v, ok := meal.Field("strMeasure2")
		assert.True(t, ok)
		assert.Equal(t, "1 tsp ", v)

		_, ok = meal.Field("strIngredient4")
		assert.False(t, ok, "null fields read as absent")
	})

	t.Run("null meals means not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"meals":null}`))
		})

		meal, err := client.SearchByName(context.Background(), "asdkjasd")
		assert.NoError(t, err)
		assert.Nil(t, meal)
	})

	t.Run("missing meals key means not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		})

		meal, err := client.SearchByName(context.Background(), "asdkjasd")
		assert.NoError(t, err)
		assert.Nil(t, meal)
	})

	t.Run("server error is a recipe service error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		meal, err := client.SearchByName(context.Background(), "pizza")
		assert.Nil(t, meal)
		assert.True(t, errors.Is(err, common.ErrRecipeServiceError))
	})

	t.Run("malformed body is a recipe service error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		})

		meal, err := client.SearchByName(context.Background(), "pizza")
		assert.Nil(t, meal)
		assert.True(t, errors.Is(err, common.ErrRecipeServiceError))
	})

	t.Run("transport failure is a recipe service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		client := NewClient(config.MealDBConfig{BaseURL: srv.URL, Timeout: time.Second})

		meal, err := client.SearchByName(context.Background(), "pizza")
		assert.Nil(t, meal)
		assert.True(t, errors.Is(err, common.ErrRecipeServiceError))
	})
}
