package web

import (
	"bytes"
	"html/template"

	"github.com/KhemPoudel/tictactoe/internal/domain"
)

type templates struct {
	index *template.Template
	game  *template.Template
	board *template.Template
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"iter": func(n int) []int {
			a := make([]int, n)
			for i := range a {
				a[i] = i
			}
			return a
		},
		"cellSymbol": func(p domain.Player) string { return p.String() },
		"add":        func(a, b int) int { return a + b },
		"mul":        func(a, b int) int { return a * b },
	}
}

func loadTemplates() *templates {
	base := template.Must(template.New("base").Funcs(funcs()).Parse(basePage))

	index := template.Must(base.Clone())
	template.Must(index.New("content").Parse(indexContent))

	game := template.Must(base.Clone())
	template.Must(game.New("content").Parse(gameContent))

	board := template.Must(template.New("board").Funcs(funcs()).Parse(boardTemplate))
	return &templates{index: index, game: game, board: board}
}

func renderTemplate(t *template.Template, data any) []byte {
	var buf bytes.Buffer
	_ = t.Execute(&buf, data)
	return buf.Bytes()
}

const basePage = `<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-tac-toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`

const indexContent = `<h1>Tic-tac-toe</h1>
<form action="/game" method="post">
  <label>Difficulty
    <select name="difficulty">
      <option value="easy">Easy</option>
      <option value="medium">Medium</option>
      <option value="hard" selected>Hard</option>
    </select>
  </label>
  <label>Play as
    <select name="side">
      <option value="X" selected>X</option>
      <option value="O">O</option>
    </select>
  </label>
  <label>First move
    <select name="first">
      <option value="you" selected>You</option>
      <option value="engine">Engine</option>
    </select>
  </label>
  <button>Start game</button>
</form>`

const gameContent = `
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div id="board-container" hx-sse="swap:board">{{.BoardHTML}}</div>
</div>`

const boardTemplate = `
<div id="board">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <p class="status">{{.Status}}</p>
  {{$b := .}}
  {{range $r := iter 3}}
  <div class="row">
    {{range $c := iter 3}}
      {{$pos := add (mul $r 3) $c}}
      <form action="/game/{{$b.ID}}/play" method="post" hx-post="/game/{{$b.ID}}/play" hx-target="#board" hx-swap="outerHTML">
        <input type="hidden" name="pos" value="{{$pos}}">
        <button type="submit" {{if $b.Over}}disabled{{end}}>{{cellSymbol (index $b.Cells $pos)}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
</div>
`
