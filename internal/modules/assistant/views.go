package assistant

import (
	"strings"

	"github.com/google/uuid"
	"github.com/nfrund/askby/internal/ask"
	"github.com/nfrund/askby/internal/examples"
	"github.com/nfrund/askby/internal/view"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const answerTarget = "#answer"

// HomePage is the landing page: example questions, the question form and
// the answer area. answer may be nil.
func HomePage(list *examples.List, flash view.FlashData, answer g.Node) g.Node {
	return view.Page("Ask", flash,
		h.H1(h.Class("text-3xl font-bold mb-2"), g.Text("展碁國際知識庫")),
		h.P(h.Class("text-gray-600 mb-6"), g.Text("Ask anything about the company, or try an example:")),
		list.Render(),
		QuestionForm(),
		h.Div(h.ID("answer"), h.Class("mt-8"), answer),
	)
}

// QuestionForm posts a typed question. Without JavaScript it falls back to
// a regular form post.
func QuestionForm() g.Node {
	return h.Form(
		h.ID("question-form"),
		h.Class("mt-6 flex gap-2"),
		h.Method("post"),
		h.Action("/ask"),
		hx.Post("/ask"),
		hx.Target(answerTarget),
		hx.Swap("innerHTML"),
		h.Input(
			h.Type("text"),
			h.Name("question"),
			h.Class("flex-1 rounded border p-2"),
			h.Placeholder("輸入您的問題"),
			h.Required(),
			h.MaxLength("1000"),
		),
		h.Button(h.Type("submit"), h.Class("rounded bg-indigo-600 px-4 py-2 text-white"), g.Text("Ask")),
	)
}

// AnswerPanel renders an answer with its sources and the prompt used.
// Thoughts arrive as "<br>"-separated text and are shown line by line.
func AnswerPanel(ans *ask.Answer) g.Node {
	return h.Section(
		h.ID("answer-"+uuid.NewString()),
		h.Class("answer"),
		h.H2(h.Class("question"), g.Text(ans.Question)),
		h.Div(h.Class("answer-body"), g.Text(ans.Answer)),
		g.If(len(ans.DataPoints) > 0,
			h.Ol(h.Class("data-points"), g.Map(ans.DataPoints, func(dp string) g.Node {
				return h.Li(g.Text(dp))
			})),
		),
		g.If(ans.Thoughts != "",
			h.Details(h.Class("thoughts"),
				h.Summary(g.Text("Thought process")),
				h.Pre(thoughtLines(ans.Thoughts)),
			),
		),
	)
}

func thoughtLines(thoughts string) g.Node {
	var nodes g.Group
	for i, line := range strings.Split(thoughts, "<br>") {
		if i > 0 {
			nodes = append(nodes, h.Br())
		}
		nodes = append(nodes, g.Text(line))
	}
	return nodes
}

// ErrorPanel renders a failed ask inside the answer area.
func ErrorPanel(question, message string) g.Node {
	return h.Section(
		h.Class("answer-error text-red-700"),
		h.Role("alert"),
		g.If(question != "", h.H2(h.Class("question"), g.Text(question))),
		h.P(g.Text(message)),
	)
}
