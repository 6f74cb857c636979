package viewer

// Heading is shown above the catalog.
const Heading = "Fatto a Mòdna"

// Topic is one catalog entry.
type Topic struct {
	Title string
	Text  string
}

// Modena is the built-in catalog, in display order. Some texts are
// abbreviated and one is empty.
var Modena = []Topic{
	{Title: "Mòdna", Text: "Mòdna (Modena in italiàn..."},
	{Title: "Ghirlandèina", Text: "La Ghirlandèina l'è al nàm..."},
	{Title: "Turtlein", Text: "I turtlein i en na fata ed pasta pina..."},
	{Title: "Ašê balsàmich", Text: ""},
	{Title: "San Zemiàn", Text: "In pió dal viàž per curèr la fióla..."},
	{Title: "Sandrone", Text: "Sandròun l'è la màscra ed Carnevêl..."},
}
