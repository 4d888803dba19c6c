package refdata

import "fmt"

// The coded catalogue. IDs are stable across regenerations; every
// transactional row generated anywhere in the system references only IDs
// defined here.

func Lifts() []Lift {
	return []Lift{
		{ID: "L001", Name: "Summit Express Gondola", Zone: "Summit Peak", CapacityPerHour: 2500, Popularity: 1.8},
		{ID: "L002", Name: "Eagle Ridge 6-pack", Zone: "North Ridge", CapacityPerHour: 1500, Popularity: 1.3},
		{ID: "L003", Name: "Blue Sky 4-pack", Zone: "Alpine Bowl", CapacityPerHour: 1200, Popularity: 1.2},
		{ID: "L004", Name: "Family Fun 4-pack", Zone: "Village Base", CapacityPerHour: 1200, Popularity: 1.4},
		{ID: "L005", Name: "Black Diamond Chair", Zone: "North Ridge", CapacityPerHour: 1000, Popularity: 0.7},
		{ID: "L006", Name: "Sunshine 4-pack", Zone: "Alpine Bowl", CapacityPerHour: 1200, Popularity: 1.1},
		{ID: "L007", Name: "Backbowl Access", Zone: "Alpine Bowl", CapacityPerHour: 800, Popularity: 0.5},
		{ID: "L008", Name: "North Face", Zone: "North Ridge", CapacityPerHour: 800, Popularity: 0.6},
		{ID: "L009", Name: "Terrain Park Express", Zone: "Village Base", CapacityPerHour: 1000, Popularity: 0.9},
		{ID: "L010", Name: "Mid Mountain 4-pack", Zone: "Alpine Bowl", CapacityPerHour: 1200, Popularity: 1.5},
		{ID: "L011", Name: "Expert Chutes", Zone: "Summit Peak", CapacityPerHour: 600, Popularity: 0.3},
		{ID: "L012", Name: "Powder Bowl", Zone: "Summit Peak", CapacityPerHour: 800, Popularity: 0.6},
		{ID: "L013", Name: "East Side 4-pack", Zone: "North Ridge", CapacityPerHour: 1200, Popularity: 1.0},
		{ID: "L014", Name: "South Ridge 4-pack", Zone: "Alpine Bowl", CapacityPerHour: 1200, Popularity: 1.1},
		{ID: "L015", Name: "Magic Carpet", Zone: "Village Base", CapacityPerHour: 800, Popularity: 0.8},
		{ID: "L016", Name: "Learning Area", Zone: "Village Base", CapacityPerHour: 600, Popularity: 0.5},
		{ID: "L017", Name: "Cruiser 6-pack", Zone: "Alpine Bowl", CapacityPerHour: 1500, Popularity: 1.4},
		{ID: "L018", Name: "Backcountry Gate", Zone: "Summit Peak", CapacityPerHour: 400, Popularity: 0.2},
	}
}

func Locations() []Location {
	return []Location{
		{ID: "LOC001", Name: "Village Rentals", Category: CategoryRental, Zone: "Village Base"},
		{ID: "LOC002", Name: "Base Lodge Rentals", Category: CategoryRental, Zone: "Village Base"},
		{ID: "LOC003", Name: "Summit Sports", Category: CategoryRental, Zone: "Summit Peak"},
		{ID: "LOC004", Name: "North Ridge Rentals", Category: CategoryRental, Zone: "North Ridge"},
		{ID: "LOC005", Name: "Demo Center", Category: CategoryRental, Zone: "Village Base"},
		{ID: "LOC006", Name: "Kids Rental Shop", Category: CategoryRental, Zone: "Village Base"},
		{ID: "LOC007", Name: "Summit Grill", Category: CategoryFoodBeverage, Zone: "Summit Peak"},
		{ID: "LOC008", Name: "Base Lodge Cafeteria", Category: CategoryFoodBeverage, Zone: "Village Base"},
		{ID: "LOC009", Name: "Ridgeview Bistro", Category: CategoryFoodBeverage, Zone: "North Ridge"},
		{ID: "LOC010", Name: "Powder Keg Bar", Category: CategoryFoodBeverage, Zone: "Village Base"},
		{ID: "LOC011", Name: "Alpine Coffee House", Category: CategoryFoodBeverage, Zone: "Alpine Bowl"},
		{ID: "LOC012", Name: "Mid Mountain Grill", Category: CategoryFoodBeverage, Zone: "Alpine Bowl"},
		{ID: "LOC013", Name: "Taco Shack", Category: CategoryFoodBeverage, Zone: "Village Base"},
		{ID: "LOC014", Name: "Waffle Cabin", Zone: "North Ridge", Category: CategoryFoodBeverage},
		{ID: "LOC015", Name: "Village Pizza", Category: CategoryFoodBeverage, Zone: "Village Base"},
		{ID: "LOC016", Name: "Slopeside Snacks", Category: CategoryFoodBeverage, Zone: "Alpine Bowl"},
		{ID: "LOC017", Name: "Main Ticket Office", Category: CategoryTicketWindow, Zone: "Village Base"},
		{ID: "LOC018", Name: "Village Kiosk", Category: CategoryTicketWindow, Zone: "Village Base"},
		{ID: "LOC019", Name: "Online Store", Category: CategoryTicketWindow, Zone: "Village Base"},
		{ID: "LOC020", Name: "Gondola Ticket Window", Category: CategoryTicketWindow, Zone: "Village Base"},
	}
}

func Products() []Product {
	return []Product{
		{ID: "PROD001", Name: "Adult Ski Package", Category: CategoryRental, ListPrice: 65},
		{ID: "PROD002", Name: "Adult Snowboard Package", Category: CategoryRental, ListPrice: 62},
		{ID: "PROD003", Name: "Child Ski Package", Category: CategoryRental, ListPrice: 45},
		{ID: "PROD004", Name: "Child Snowboard Package", Category: CategoryRental, ListPrice: 45},
		{ID: "PROD005", Name: "Performance Ski Package", Category: CategoryRental, ListPrice: 85},
		{ID: "PROD006", Name: "Demo Ski Package", Category: CategoryRental, ListPrice: 95},
		{ID: "PROD007", Name: "Helmet", Category: CategoryRental, ListPrice: 15},
		{ID: "PROD008", Name: "Ski Boots Only", Category: CategoryRental, ListPrice: 30},
		{ID: "PROD009", Name: "Poles Only", Category: CategoryRental, ListPrice: 10},
		{ID: "PROD010", Name: "Snowshoe Package", Category: CategoryRental, ListPrice: 35},
		{ID: "PROD011", Name: "Goggles", Category: CategoryRental, ListPrice: 20},
		{ID: "PROD012", Name: "Ski Clothing Package", Category: CategoryRental, ListPrice: 40},
		{ID: "PROD013", Name: "Locker Rental", Category: CategoryRental, ListPrice: 12},
		{ID: "PROD014", Name: "Burger & Fries", Category: CategoryFoodBeverage, ListPrice: 18},
		{ID: "PROD015", Name: "Chicken Tenders", Category: CategoryFoodBeverage, ListPrice: 16},
		{ID: "PROD016", Name: "Pizza Slice", Category: CategoryFoodBeverage, ListPrice: 9},
		{ID: "PROD017", Name: "Chili Bowl", Category: CategoryFoodBeverage, ListPrice: 12},
		{ID: "PROD018", Name: "Caesar Salad", Category: CategoryFoodBeverage, ListPrice: 14},
		{ID: "PROD019", Name: "Breakfast Burrito", Category: CategoryFoodBeverage, ListPrice: 13},
		{ID: "PROD020", Name: "Street Tacos", Category: CategoryFoodBeverage, ListPrice: 15},
		{ID: "PROD021", Name: "Belgian Waffle", Category: CategoryFoodBeverage, ListPrice: 11},
		{ID: "PROD022", Name: "Hot Chocolate", Category: CategoryFoodBeverage, ListPrice: 6},
		{ID: "PROD023", Name: "Latte", Category: CategoryFoodBeverage, ListPrice: 7},
		{ID: "PROD024", Name: "Craft Beer", Category: CategoryFoodBeverage, ListPrice: 10},
		{ID: "PROD025", Name: "House Wine", Category: CategoryFoodBeverage, ListPrice: 12},
		{ID: "PROD026", Name: "Soft Drink", Category: CategoryFoodBeverage, ListPrice: 4},
		{ID: "PROD027", Name: "Bottled Water", Category: CategoryFoodBeverage, ListPrice: 4},
		{ID: "PROD028", Name: "Energy Bar", Category: CategoryFoodBeverage, ListPrice: 5},
		{ID: "PROD029", Name: "Soup of the Day", Category: CategoryFoodBeverage, ListPrice: 10},
		{ID: "PROD030", Name: "Pretzel", Category: CategoryFoodBeverage, ListPrice: 7},
		{ID: "PROD031", Name: "Cookie", Category: CategoryFoodBeverage, ListPrice: 4},
	}
}

func TicketTypes() []TicketType {
	return []TicketType{
		{ID: "TKT001", Name: "Adult Day Pass", Category: TicketDay, ListPrice: 129},
		{ID: "TKT002", Name: "Child Day Pass", Category: TicketDay, ListPrice: 79},
		{ID: "TKT003", Name: "Senior Day Pass", Category: TicketDay, ListPrice: 99},
		{ID: "TKT004", Name: "Half Day Pass", Category: TicketDay, ListPrice: 89},
		{ID: "TKT005", Name: "2-Day Pass", Category: TicketMultiDay, ListPrice: 239},
		{ID: "TKT006", Name: "3-Day Pass", Category: TicketMultiDay, ListPrice: 339},
		{ID: "TKT007", Name: "5-Day Pass", Category: TicketMultiDay, ListPrice: 519},
		{ID: "TKT008", Name: "Unlimited Season Pass", Category: TicketSeason, ListPrice: 899},
		{ID: "TKT009", Name: "Weekday Season Pass", Category: TicketSeason, ListPrice: 699},
		{ID: "TKT010", Name: "Young Adult Season Pass", Category: TicketSeason, ListPrice: 699},
		{ID: "TKT011", Name: "Child Season Pass", Category: TicketSeason, ListPrice: 499},
		{ID: "TKT012", Name: "Senior Season Pass", Category: TicketSeason, ListPrice: 499},
		{ID: "TKT013", Name: "Military Season Pass", Category: TicketSeason, ListPrice: 399},
		{ID: "TKT014", Name: "Family Season Pass", Category: TicketSeason, ListPrice: 699},
		{ID: "TKT015", Name: "Group Day Pass", Category: TicketDay, ListPrice: 129},
		{ID: "TKT016", Name: "Event Day Pass", Category: TicketDay, ListPrice: 129},
		{ID: "TKT018", Name: "Spring Season Pass", Category: TicketSeason, ListPrice: 299},
	}
}

var instructorNames = []string{
	"Hannah Pierce", "Marcus Webb", "Elena Vasquez", "Tom Aldrin", "Sofia Berg",
	"Jake Mortensen", "Priya Nair", "Chris Okafor", "Lena Hoffman", "Diego Ramos",
	"Amy Chen", "Erik Lund", "Maya Castillo", "Sam Whitfield", "Nora Eriksen",
	"Ben Takahashi", "Ivy Sorensen", "Luke Barrett", "Carmen Silva", "Owen Fitzgerald",
	"Tara Novak", "Felix Brandt", "Rosa Delgado", "Nils Petersen", "Grace Holloway",
}

var instructorSpecialties = []string{
	"beginner_group", "intermediate_group", "advanced_group", "private", "kids_camp",
}

func Instructors() []Instructor {
	out := make([]Instructor, 0, len(instructorNames))
	for i, name := range instructorNames {
		out = append(out, Instructor{
			ID:        instructorID(i + 1),
			Name:      name,
			Specialty: instructorSpecialties[i%len(instructorSpecialties)],
			YearsExp:  2 + (i*3)%18,
		})
	}
	return out
}

func instructorID(n int) string {
	return fmt.Sprintf("INST%03d", n)
}
