package markup

import (
	"testing"

	"github.com/leapstack-labs/leapui/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintModule_Hero(t *testing.T) {
	fn, err := generate(t, testutil.HeroDocument(t), "c_hero")
	require.NoError(t, err)

	want := `import "./Hero.css";

export default function Hero() {
  return (
    <div className="Hero-root">
      <p className="Hero-title">
        {"Build faster"}
      </p>
    </div>
  );
}
`
	assert.Equal(t, want, PrintModule(fn))
}

func TestPrintModule_Card(t *testing.T) {
	fn, err := generate(t, testutil.CardDocument(t), "c_card")
	require.NoError(t, err)

	want := `import "./Card.css";

export default function Card({ title, imageSrc }) {
  return (
    <div className="Card-root">
      <img className="Card-thumb" src={imageSrc} alt="Thumbnail" />
      <h2 className="Card-heading">
        {title}
      </h2>
      <a className="Card-cta" href="/more">
        {"Read more"}
      </a>
    </div>
  );
}
`
	assert.Equal(t, want, PrintModule(fn))
}

func TestPrintModule_Imports(t *testing.T) {
	fn := &Function{
		Name:       "Page",
		Components: []string{"Card", "NavBar"},
		Assets:     []Import{{Name: "asset0", Path: "./hero.png"}},
	}

	want := `import "./Page.css";
import Card from "./Card";
import NavBar from "./NavBar";
import asset0 from "./hero.png";

export default function Page() {
  return null;
}
`
	assert.Equal(t, want, PrintModule(fn))
}

func TestPrint_AttrQuoting(t *testing.T) {
	tests := []struct {
		name string
		el   *Element
		want string
	}{
		{
			name: "plain string",
			el:   &Element{Tag: "a", Attrs: []Attr{{Name: "href", Value: "/x"}}},
			want: "<a href=\"/x\" />\n",
		},
		{
			name: "string with quotes",
			el:   &Element{Tag: "img", Attrs: []Attr{{Name: "alt", Value: `say "hi"`}}},
			want: "<img alt={\"say \\\"hi\\\"\"} />\n",
		},
		{
			name: "expression",
			el:   &Element{Tag: "img", Attrs: []Attr{{Name: "src", Kind: AttrExpr, Value: "asset0"}}},
			want: "<img src={asset0} />\n",
		},
		{
			name: "component children attribute stays an attribute",
			el:   &Element{Tag: "Card", Component: true, Attrs: []Attr{{Name: "children", Value: "x"}}},
			want: "<Card children=\"x\" />\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Print(tt.el))
		})
	}
}
