package resources

import "github.com/SevgiNurKARA/Personal-learning-coach/internal/learning"

var curated = map[string][]learning.Resource{
	"python": {
		{Title: "Python Official Documentation", URL: "https://docs.python.org/3/tutorial/", Type: "documentation", Description: "The official Python tutorial"},
		{Title: "W3Schools Python Tutorial", URL: "https://www.w3schools.com/python/", Type: "tutorial", Description: "Interactive Python lessons"},
		{Title: "Real Python", URL: "https://realpython.com/", Type: "tutorial", Description: "In-depth Python articles and projects"},
		{Title: "Python Exercises - HackerRank", URL: "https://www.hackerrank.com/domains/python", Type: "practice", Description: "Python practice problems"},
		{Title: "Codecademy Python", URL: "https://www.codecademy.com/learn/learn-python-3", Type: "course", Description: "Interactive Python course"},
		{Title: "BTK Akademi Python", URL: "https://www.btkakademi.gov.tr/portal/course/python-ile-programlama-10701", Type: "course", Description: "Free Python course in Turkish"},
		{Title: "YouTube - Python Lessons", URL: "https://www.youtube.com/results?search_query=python+tutorial", Type: "video", Description: "Python video lessons"},
	},
	"web": {
		{Title: "MDN Web Docs", URL: "https://developer.mozilla.org/", Type: "documentation", Description: "The most complete reference for web technologies"},
		{Title: "W3Schools", URL: "https://www.w3schools.com/", Type: "tutorial", Description: "HTML, CSS and JavaScript lessons"},
		{Title: "freeCodeCamp", URL: "https://www.freecodecamp.org/", Type: "course", Description: "Free web development curriculum"},
		{Title: "CSS-Tricks", URL: "https://css-tricks.com/", Type: "tutorial", Description: "CSS tips and examples"},
		{Title: "JavaScript.info", URL: "https://javascript.info/", Type: "tutorial", Description: "The modern JavaScript tutorial"},
		{Title: "Frontend Mentor", URL: "https://www.frontendmentor.io/", Type: "practice", Description: "Practice with real projects"},
	},
	"data": {
		{Title: "Kaggle Learn", URL: "https://www.kaggle.com/learn", Type: "course", Description: "Free data science courses"},
		{Title: "pandas Getting Started", URL: "https://pandas.pydata.org/docs/getting_started/", Type: "documentation", Description: "The pandas learning guide"},
		{Title: "DataCamp", URL: "https://www.datacamp.com/", Type: "course", Description: "Data science courses"},
		{Title: "Towards Data Science", URL: "https://towardsdatascience.com/", Type: "article", Description: "Data science articles"},
		{Title: "NumPy for Absolute Beginners", URL: "https://numpy.org/doc/stable/user/absolute_beginners.html", Type: "documentation", Description: "The NumPy beginner guide"},
	},
	"english": {
		{Title: "Duolingo", URL: "https://www.duolingo.com/", Type: "app", Description: "Free language learning app"},
		{Title: "BBC Learning English", URL: "https://www.bbc.co.uk/learningenglish/", Type: "course", Description: "English lessons from the BBC"},
		{Title: "Cambridge Dictionary", URL: "https://dictionary.cambridge.org/", Type: "tool", Description: "Dictionary with pronunciation"},
		{Title: "Englishpage", URL: "https://www.englishpage.com/", Type: "tutorial", Description: "English grammar lessons"},
		{Title: "YouTube - English with Lucy", URL: "https://www.youtube.com/c/EnglishwithLucy", Type: "video", Description: "English video lessons"},
	},
	"general": {
		{Title: "Khan Academy", URL: "https://www.khanacademy.org/", Type: "course", Description: "Free online education platform"},
		{Title: "Coursera", URL: "https://www.coursera.org/", Type: "course", Description: "University courses"},
		{Title: "edX", URL: "https://www.edx.org/", Type: "course", Description: "Free online courses"},
		{Title: "Udemy", URL: "https://www.udemy.com/", Type: "course", Description: "Courses on many subjects"},
	},
}

// Curated returns a copy of the curated list for a domain. Unknown domains
// get the general list.
func Curated(domain string) []learning.Resource {
	list, ok := curated[domain]
	if !ok {
		list = curated["general"]
	}
	out := make([]learning.Resource, len(list))
	copy(out, list)
	return out
}
