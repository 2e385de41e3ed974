package editor

import (
	"fmt"
	"strings"
	"unicode"
)

// ToMarkdown renders a document tree as Markdown. It is used when note
// content is handed to the language model, which reads Markdown far more
// reliably than raw editor JSON.
func ToMarkdown(doc map[string]interface{}) string {
	if doc == nil {
		return ""
	}

	content, ok := doc["content"].([]interface{})
	if !ok {
		return ""
	}

	var builder strings.Builder
	for _, node := range content {
		if nodeMap, ok := node.(map[string]interface{}); ok {
			renderNode(&builder, nodeMap)
		}
	}

	return strings.TrimSpace(builder.String())
}

func renderNode(builder *strings.Builder, node map[string]interface{}) {
	nodeType, _ := node["type"].(string)

	switch nodeType {
	case "heading":
		attrs, _ := node["attrs"].(map[string]interface{})
		level, _ := attrs["level"].(float64)
		if level < 1 {
			level = 1
		}
		builder.WriteString(strings.Repeat("#", int(level)))
		builder.WriteString(" ")
		renderInline(builder, node)
		builder.WriteString("\n\n")
	case "paragraph":
		renderInline(builder, node)
		builder.WriteString("\n\n")
	case "bulletList":
		renderList(builder, node, "- ")
		builder.WriteString("\n")
	case "orderedList":
		renderOrderedList(builder, node)
		builder.WriteString("\n")
	case "taskList":
		renderTaskList(builder, node)
		builder.WriteString("\n")
	case "codeBlock":
		renderCodeBlock(builder, node)
	case "blockquote":
		renderBlockquote(builder, node)
	case "horizontalRule":
		builder.WriteString("---\n\n")
	default:
		renderChildren(builder, node)
	}
}

func renderChildren(builder *strings.Builder, node map[string]interface{}) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, child := range content {
		if childNode, ok := child.(map[string]interface{}); ok {
			renderNode(builder, childNode)
		}
	}
}

func renderList(builder *strings.Builder, node map[string]interface{}, marker string) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, item := range content {
		itemNode, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		builder.WriteString(marker)
		renderInline(builder, itemNode)
		builder.WriteString("\n")
	}
}

func renderOrderedList(builder *strings.Builder, node map[string]interface{}) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for i, item := range content {
		itemNode, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		builder.WriteString(fmt.Sprintf("%d. ", i+1))
		renderInline(builder, itemNode)
		builder.WriteString("\n")
	}
}

func renderTaskList(builder *strings.Builder, node map[string]interface{}) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, item := range content {
		itemNode, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		attrs, _ := itemNode["attrs"].(map[string]interface{})
		checked, _ := attrs["checked"].(bool)
		if checked {
			builder.WriteString("- [x] ")
		} else {
			builder.WriteString("- [ ] ")
		}
		renderInline(builder, itemNode)
		builder.WriteString("\n")
	}
}

func renderCodeBlock(builder *strings.Builder, node map[string]interface{}) {
	attrs, _ := node["attrs"].(map[string]interface{})
	language, _ := attrs["language"].(string)

	builder.WriteString("```")
	builder.WriteString(language)
	builder.WriteString("\n")
	builder.WriteString(flattenText(node))
	builder.WriteString("\n```\n\n")
}

func renderBlockquote(builder *strings.Builder, node map[string]interface{}) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, child := range content {
		if childNode, ok := child.(map[string]interface{}); ok {
			builder.WriteString("> ")
			renderNode(builder, childNode)
		}
	}
}

// renderInline writes the flattened text of a node's inline content,
// applying bold/italic/code/strike marks.
func renderInline(builder *strings.Builder, node map[string]interface{}) {
	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, item := range content {
		child, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		childType, _ := child["type"].(string)
		switch childType {
		case "text":
			text, _ := child["text"].(string)
			if marks, ok := child["marks"].([]interface{}); ok {
				text = applyMarks(text, marks)
			}
			builder.WriteString(text)
		case "hardBreak":
			builder.WriteString("  \n")
		case "paragraph":
			renderInline(builder, child)
		}
	}
}

func applyMarks(text string, marks []interface{}) string {
	for _, mark := range marks {
		markMap, ok := mark.(map[string]interface{})
		if !ok {
			continue
		}
		markType, _ := markMap["type"].(string)
		switch markType {
		case "bold":
			text = "**" + text + "**"
		case "italic":
			text = "*" + text + "*"
		case "code":
			text = "`" + text + "`"
		case "strike":
			text = "~~" + text + "~~"
		}
	}
	return text
}

// PlainText renders a document as whitespace-separated plain text, used
// for search previews.
func PlainText(doc map[string]interface{}) string {
	if doc == nil {
		return ""
	}
	var builder strings.Builder
	collectText(doc, &builder, false)
	return strings.Join(strings.Fields(builder.String()), " ")
}

// CountWords counts the words in a document's text.
func CountWords(doc map[string]interface{}) int {
	return len(strings.FieldsFunc(PlainText(doc), unicode.IsSpace))
}
