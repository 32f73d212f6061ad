package recipe

import (
	"strings"

	"cookmate/internal/core/mealdb"
)

const pizzaInstructions = "Heat the water and sugar.\r\n\r\n" +
	"Bring a large pot of water to a boil. Add kosher salt to the boiling water, then add the pasta. " +
	"Cook according to the package instructions, about 9 minutes.\r\n" +
	"Mix the flour and yeast.\r\n   \r\n" +
	"Knead for ten minutes.\r\n" +
	"Leave to rise.\r\n" +
	"Roll out the dough.\r\n" +
	"Bake for 12 minutes."

func pizzaMeal() *mealdb.Meal {
	return mealdb.NewMeal(map[string]string{
		mealdb.FieldID:           "53014",
		mealdb.FieldName:         "Pizza Express Margherita",
		mealdb.FieldArea:         "Italian",
		mealdb.FieldCategory:     "Miscellaneous",
		mealdb.FieldThumbnail:    "https://www.themealdb.com/images/media/meals/x0lk931587671540.jpg",
		mealdb.FieldInstructions: pizzaInstructions,
		mealdb.FieldTags:         "Pizza,Bread",
		mealdb.FieldSource:       "https://www.pizzaexpress.com/margherita",

		"strIngredient1": "Water",
		"strMeasure1":    "150ml",
		"strIngredient2": "Sugar",
		"strMeasure2":    "1 tsp",
		"strIngredient3": "Yeast",
		"strMeasure3":    "15g",
		"strIngredient4": "Plain Flour",
		"strMeasure4":    "225g",
		"strIngredient5": "Olive Oil",
		"strMeasure5":    "Drizzle",
		"strIngredient6": "Mozzarella",
		"strMeasure6":    "125g",
		"strIngredient7": "",
		"strMeasure7":    "",
	})
}

const pizzaReply = "👨‍🍳 Let's make **Pizza Express Margherita** from **Italian cuisine**!\n\n" +
	"🛒 **Ingredients & Prices:**\n" +
	"- Water: 150ml (₨335.4)\n" +
	"- Sugar: 1 tsp (₨450.8)\n" +
	"- Yeast: 15g (₨124.5)\n" +
	"- Plain Flour: 225g (₨71.8)\n" +
	"- Olive Oil: Drizzle (₨125.4)\n" +
	"- Mozzarella: 125g (₨123.4)\n" +
	"\n📝 **Step-by-step Instructions:**\n" +
	"1. Heat the water and sugar.\n" +
	"2. Bring a large pot of water to a boil. Add kosher salt to the boiling water, then add the\n" +
	"pasta. Cook according to the package instructions, about 9 minutes.\n" +
	"3. Mix the flour and yeast.\n" +
	"4. Knead for ten minutes.\n" +
	"5. Leave to rise.\n"

// ingredientLines returns the bullet lines of a formatted reply.
func ingredientLines(reply string) []string {
	var lines []string
	for _, line := range strings.Split(reply, "\n") {
		if strings.HasPrefix(line, "- ") {
			lines = append(lines, line)
		}
	}
	return lines
}
