package catalog

import "github.com/videoteka/videoteka-backend/pkg/db/models"

// seedFilm keeps the curated list compact; nullable columns stay plain
// strings here and are pointered on insert.
type seedFilm struct {
	title   string
	titleRU string
	author  string
	price   string
	genre   string
}

// curatedFilms is the stock catalog installed on an empty database. Genres
// are lowercase on purpose: lookups fold case against these values.
var curatedFilms = []seedFilm{
	// action
	{"The Dark Knight", "Тёмный рыцарь", "Christopher Nolan", "649", "action"},
	{"Gladiator", "Гладиатор", "Ridley Scott", "499", "action"},
	{"The Avengers", "Мстители", "Joss Whedon", "549", "action"},
	{"Terminator 2: Judgment Day", "Терминатор 2: Судный день", "James Cameron", "499", "action"},

	// comedy
	{"Toy Story", "История игрушек", "John Lasseter", "399", "comedy"},
	{"Up", "Вверх", "Pete Docter", "399", "comedy"},
	{"Amélie", "Амели", "Jean-Pierre Jeunet", "449", "comedy"},
	{"The Lion King", "Король Лев", "Roger Allers, Rob Minkoff", "449", "comedy"},

	// drama
	{"The Shawshank Redemption", "Побег из Шоушенка", "Frank Darabont", "599", "drama"},
	{"Fight Club", "Бойцовский клуб", "David Fincher", "449", "drama"},
	{"Forrest Gump", "Форрест Гамп", "Robert Zemeckis", "449", "drama"},
	{"The Green Mile", "Зелёная миля", "Frank Darabont", "499", "drama"},

	// fantasy
	{"The Lord of the Rings: The Fellowship of the Ring", "Властелин колец: Братство Кольца", "Peter Jackson", "779", "fantasy"},
	{"The Lord of the Rings: The Two Towers", "Властелин колец: Две крепости", "Peter Jackson", "779", "fantasy"},
	{"The Lord of the Rings: The Return of the King", "Властелин колец: Возвращение короля", "Peter Jackson", "799", "fantasy"},
	{"Spirited Away", "Унесённые призраками", "Hayao Miyazaki", "499", "fantasy"},

	// horror
	{"Alien", "Чужой", "Ridley Scott", "499", "horror"},
	{"The Conjuring", "Заклятие", "James Wan", "499", "horror"},
	{"The Conjuring 2", "Заклятие 2", "James Wan", "499", "horror"},
	{"The Silence of the Lambs", "Молчание ягнят", "Jonathan Demme", "499", "horror"},

	// scifi
	{"Inception", "Начало", "Christopher Nolan", "649", "scifi"},
	{"The Matrix", "Матрица", "The Wachowskis", "499", "scifi"},
	{"Interstellar", "Интерстеллар", "Christopher Nolan", "699", "scifi"},
	{"Star Wars: A New Hope", "Звёздные войны: Новая надежда", "George Lucas", "499", "scifi"},
	{"The Empire Strikes Back", "Империя наносит ответный удар", "Irvin Kershner", "499", "scifi"},
}

// SeedFilms materializes the curated list as persistence models.
func SeedFilms() []models.Film {
	films := make([]models.Film, 0, len(curatedFilms))
	for _, f := range curatedFilms {
		titleRU, author, price := f.titleRU, f.author, f.price
		films = append(films, models.Film{
			Title:      f.title,
			TitleRU:    &titleRU,
			Author:     &author,
			Price:      &price,
			GenreTitle: f.genre,
		})
	}
	return films
}
