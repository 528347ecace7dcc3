package schema

// CoreTitleGenreTable represents the 'core.titlegenre' join table
// (many-to-many between core.title and core.genre).
type CoreTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CoreTitleGenre is the schema definition for core.titlegenre
var CoreTitleGenre = CoreTitleGenreTable{
	Table:   "core.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
