package handler

var homePage = Page{
	Slug:    "home",
	Title:   "Pawsteps",
	Tagline: "Happy walks for happy dogs",
	Sections: []Section{
		{
			Heading: "Your neighborhood dog-walking crew",
			Body:    "Daily walks, drop-in visits and overnight stays from vetted local walkers who treat your dog like their own.",
		},
		{
			Heading: "Book in under a minute",
			Body:    "Pick a service, a date and a time. We handle the rest and keep you posted after every visit.",
		},
	},
}

var servicesPage = Page{
	Slug:  "services",
	Title: "Services",
	Sections: []Section{
		{
			Heading: "Walk",
			Body:    "A brisk neighborhood walk, 20 minutes to 4 hours. Water, treats and plenty of sniff breaks included.",
		},
		{
			Heading: "Drop-in",
			Body:    "A home visit for feeding, fresh water, playtime and a quick garden break.",
		},
		{
			Heading: "Overnight",
			Body:    "A walker stays the night so your dog keeps their routine while you are away.",
		},
	},
}

var pricingPage = Page{
	Slug:  "pricing",
	Title: "Pricing",
	Sections: []Section{
		{
			Heading: "Walk",
			Body:    "From $24 per 30 minutes. Each additional dog $8.",
		},
		{
			Heading: "Drop-in",
			Body:    "From $20 per visit, up to 6 dogs per household.",
		},
		{
			Heading: "Overnight",
			Body:    "From $85 per night, walks included.",
		},
	},
}

var testimonialsPage = Page{
	Slug:  "testimonials",
	Title: "Testimonials",
	Sections: []Section{
		{
			Heading: "Maya & Biscuit",
			Body:    "Biscuit sprints to the door when his walker arrives. Booking takes seconds and the photo updates make my day.",
		},
		{
			Heading: "Tom & Luna",
			Body:    "We travel a lot and the overnight stays have been a lifesaver. Luna barely notices we are gone.",
		},
		{
			Heading: "Priya, Rex & Daisy",
			Body:    "Two big dogs, zero hassle. Drop-ins at lunch keep them calm for the rest of the day.",
		},
	},
}

var loginPage = Page{
	Slug:    "login",
	Title:   "Sign in",
	Tagline: "Sign in or create an account to book a walk",
}

var bookPage = Page{
	Slug:    "book",
	Title:   "Book a service",
	Tagline: "Choose a service, date and time",
}

var profilePage = Page{
	Slug:  "profile",
	Title: "Your profile",
}
