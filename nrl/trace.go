package nrl

import (
	"fmt"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"strings"
)

//stepDescription returns the description of one iterate for trace rendering
//as a graph.
func (trace Trace) stepDescription(ind int) string {
	step := trace.Steps[ind]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("iter: ", ind))
	sb.WriteString("[")
	h := Height(step.Point)
	for p := 0; p < h; p++ {
		sb.WriteString(fmt.Sprintf("  %6.4f,\n", step.Point.At(p, 0)))
	}
	sb.WriteString("]\n")
	sb.WriteString(fmt.Sprintf("|grad| = %.3e", step.GradNorm))
	return sb.String()
}

//DrawGraph renders the iterate chain of a minimization run as a graph. The
//terminal node carries the final status and is drawn as a box.
func (trace Trace) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	HandleError(err)

	var parentNode *cgraph.Node
	for ind := range trace.Steps {
		currentNode, err := graph.CreateNode(fmt.Sprint(ind))
		HandleError(err)

		if ind == len(trace.Steps)-1 {
			currentNode.Set("label", trace.stepDescription(ind)+"\n"+trace.Final.String())
			currentNode.Set("shape", "box")
		} else {
			currentNode.Set("label", trace.stepDescription(ind))
		}

		if parentNode != nil {
			graph.CreateEdge("", parentNode, currentNode)
		}
		parentNode = currentNode
	}

	return graphViz, graph
}

//Render stores the trace graph as a picture. Supported figure types are png,
//svg and jpg.
func (trace Trace) Render(figureType, fileName string) {
	graphvizType := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
	}[figureType]

	graphViz, graph := trace.DrawGraph()
	HandleError(graphViz.RenderFilename(graph, graphvizType, fileName))
}
