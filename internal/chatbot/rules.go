// Package chatbot answers canned restaurant questions. Replies come from an
// ordered rule table where the first matching rule wins; there is no memory
// of earlier turns.
package chatbot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
)

// State is what a rule may look at when building its reply.
type State struct {
	Cart models.CartState
	Menu []models.MenuItem
}

type Reply struct {
	Content     string
	Suggestions []string
}

type Rule struct {
	Name    string
	Match   func(msg string) bool
	Respond func(st State) Reply
}

var (
	popularItems = []string{"Wagyu Beef Burger", "Lobster Risotto", "Chocolate Lava Cake", "Truffle Arancini"}
	vegetarian   = []string{"Burrata Salad", "Margherita Pizza", "Vegetable Pasta"}
	vegan        = []string{"Garden Salad", "Vegan Burger"}
	glutenFree   = []string{"Grilled Salmon", "Burrata Salad"}
)

const (
	openingHours = "11:00 AM - 11:00 PM daily"
	location     = "123 Gourmet Street, Foodie City"
	phone        = "+1 234-567-8900"
)

const WelcomeMessage = "Hi there! Welcome to our restaurant! I'm here to help you with our menu, orders, reservations, and any questions you might have. How can I assist you today?"

var WelcomeSuggestions = []string{"Show me the menu", "What are your hours?", "Make a reservation", "Check my cart"}

var greetingRe = regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening)`)

func containsAny(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}

func static(content string, suggestions ...string) func(State) Reply {
	return func(State) Reply {
		return Reply{Content: content, Suggestions: suggestions}
	}
}

func names(menu []models.MenuItem, cat models.MenuCategory) string {
	var out []string
	for _, it := range menu {
		if it.Category == cat {
			out = append(out, it.Name)
		}
	}
	return strings.Join(out, ", ")
}

// Rules is evaluated top to bottom. Several rules can match one message, so
// the order here is the tie-break.
var Rules = []Rule{
	{
		Name:  "greeting",
		Match: greetingRe.MatchString,
		Respond: static("Hello! Welcome to our restaurant! I'm your virtual assistant. How can I help you today?",
			"Show me the menu", "What are your hours?", "Do you have vegetarian options?", "Check my cart"),
	},
	{
		Name:  "menu",
		Match: containsAny("menu", "food", "dishes"),
		Respond: static(fmt.Sprintf("We offer a variety of delicious dishes across categories: Starters, Mains, Desserts, and Drinks. Our most popular items include %s. Would you like to see a specific category?", strings.Join(popularItems, ", ")),
			"Show starters", "Show mains", "Show desserts", "Show drinks", "What are your specials?"),
	},
	{
		Name:  "starters",
		Match: containsAny("starter", "appetizer"),
		Respond: func(st State) Reply {
			return Reply{
				Content:     fmt.Sprintf("Our starters include: %s. These are perfect to begin your culinary journey with us!", names(st.Menu, models.CategoryStarters)),
				Suggestions: []string{"Add Truffle Arancini", "Add Burrata Salad", "Show me mains"},
			}
		},
	},
	{
		Name:  "mains",
		Match: containsAny("main", "entree"),
		Respond: func(st State) Reply {
			return Reply{
				Content:     fmt.Sprintf("Our main courses include: %s. Each dish is crafted with passion and the finest ingredients!", names(st.Menu, models.CategoryMains)),
				Suggestions: []string{"Add Wagyu Beef Burger", "Add Lobster Risotto", "Show me desserts"},
			}
		},
	},
	{
		Name:  "desserts",
		Match: containsAny("dessert", "sweet"),
		Respond: func(st State) Reply {
			return Reply{
				Content:     fmt.Sprintf("Indulge in our desserts: %s. The perfect ending to your meal!", names(st.Menu, models.CategoryDesserts)),
				Suggestions: []string{"Add Chocolate Lava Cake", "Add Tiramisu", "Show me drinks"},
			}
		},
	},
	{
		Name:  "drinks",
		Match: containsAny("drink", "beverage"),
		Respond: static("We offer a selection of refreshing drinks including craft cocktails, wines, beers, and non-alcoholic beverages.",
			"Show cocktails", "Show wines", "Show non-alcoholic drinks"),
	},
	{
		Name:  "vegetarian",
		Match: containsAny("vegetarian", "veggie"),
		Respond: static(fmt.Sprintf("Yes, we have several vegetarian options including: %s. Would you like to add any of these to your cart?", strings.Join(vegetarian, ", ")),
			"Add Burrata Salad", "Add Margherita Pizza", "Show all vegetarian options"),
	},
	{
		Name:  "vegan",
		Match: containsAny("vegan"),
		Respond: static(fmt.Sprintf("We have vegan options available: %s. Our chefs can also modify certain dishes to be vegan-friendly!", strings.Join(vegan, ", ")),
			"Add Vegan Burger", "Add Garden Salad", "What can be made vegan?"),
	},
	{
		Name:  "gluten-free",
		Match: containsAny("gluten free", "gluten-free"),
		Respond: static(fmt.Sprintf("We offer gluten-free options including: %s. Please inform your server about any allergies.", strings.Join(glutenFree, ", ")),
			"Add Grilled Salmon", "Add Burrata Salad", "Show all gluten-free options"),
	},
	{
		Name:  "hours",
		Match: containsAny("hour", "open", "time"),
		Respond: static(fmt.Sprintf("We're open %s. We look forward to serving you!", openingHours),
			"Make a reservation", "Do you deliver?", "Show me the menu"),
	},
	{
		Name:  "location",
		Match: containsAny("location", "address", "where"),
		Respond: static(fmt.Sprintf("We're located at %s. You can also reach us at %s.", location, phone),
			"Make a reservation", "Do you deliver?", "Show me the menu"),
	},
	{
		Name:  "cart",
		Match: containsAny("cart", "bag", "basket"),
		Respond: func(st State) Reply {
			if st.Cart.TotalItems == 0 {
				return Reply{
					Content:     "Your cart is empty. Would you like to browse our menu and add some delicious items?",
					Suggestions: []string{"Show me the menu", "What are your specials?", "Show starters"},
				}
			}
			return Reply{
				Content:     fmt.Sprintf("You have %d item(s) in your cart with a total of $%s. Ready to checkout?", st.Cart.TotalItems, st.Cart.TotalAmount.StringFixed(2)),
				Suggestions: []string{"View cart", "Checkout", "Add more items", "Clear cart"},
			}
		},
	},
	{
		Name:  "reservation",
		Match: containsAny("reservation", "book", "table"),
		Respond: static("You can make a reservation through our reservation page. We recommend booking in advance for weekends and special occasions!",
			"Make a reservation", "Check availability", "Show me the menu"),
	},
	{
		Name:  "delivery",
		Match: containsAny("deliver", "takeaway", "pickup"),
		Respond: static("Yes, we offer both delivery and takeaway options! You can place your order here and choose your preferred option at checkout.",
			"Show me the menu", "Check my cart", "How long does delivery take?"),
	},
	{
		Name:  "pricing",
		Match: containsAny("price", "cost", "expensive"),
		Respond: static("Our prices range from $8 for starters to $45 for premium mains. We offer great value for the quality and experience!",
			"Show me the menu", "Do you have any deals?", "What are your specials?"),
	},
	{
		Name:  "specials",
		Match: containsAny("special", "deal", "offer", "discount"),
		Respond: static("Today's specials include our Chef's Signature Wagyu Burger and Lobster Risotto. We also have a happy hour from 4-6 PM with 20% off all drinks!",
			"Add Wagyu Beef Burger", "Add Lobster Risotto", "Show me the full menu"),
	},
	{
		Name:  "allergies",
		Match: containsAny("allerg", "nut", "dairy", "shellfish"),
		Respond: static("We take allergies very seriously. Please inform us of any allergies when ordering, and our chefs will ensure your meal is prepared safely. Would you like to know about specific ingredients in any dish?",
			"Show allergen information", "Contact staff", "Show me the menu"),
	},
	{
		Name:  "help",
		Match: containsAny("help", "assist", "support"),
		Respond: static("I'm here to help! I can assist you with:\n• Browsing our menu\n• Checking your cart\n• Making reservations\n• Answering questions about dietary options\n• Providing information about hours and location\n\nWhat would you like to know?",
			"Show me the menu", "Make a reservation", "Contact human support"),
	},
	{
		Name:  "thanks",
		Match: containsAny("thank", "thanks"),
		Respond: static("You're very welcome! It's my pleasure to assist you. Enjoy your dining experience with us!",
			"Show me the menu", "Make a reservation", "Goodbye"),
	},
	{
		Name:    "goodbye",
		Match:   containsAny("bye", "goodbye", "see you"),
		Respond: static("Goodbye! Thank you for choosing our restaurant. Have a wonderful day!"),
	},
}

var fallback = static("I'm not sure I understood that correctly. I can help you with our menu, taking orders, making reservations, or answering questions about our restaurant. What would you like to do?",
	"Show me the menu", "Make a reservation", "Check my cart", "Get help")

// Respond returns the first matching rule's reply and its name, or the
// fallback with name "default".
func Respond(message string, st State) (Reply, string) {
	msg := strings.ToLower(message)
	for _, r := range Rules {
		if r.Match(msg) {
			return r.Respond(st), r.Name
		}
	}
	return fallback(st), "default"
}
