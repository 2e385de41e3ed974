// Package editor works with the rich-text document JSON produced by the
// note editor. Documents are trees of typed nodes ({"type": ..., "attrs":
// ..., "content": [...]}) stored as-is in the notes table.
package editor

import "strings"

// ExtractedTask is a checklist item found in a document.
type ExtractedTask struct {
	// ID is the editor-assigned task identifier, empty when the editor
	// has not stamped one yet.
	ID        string
	Content   string
	Completed bool
}

// ExtractTasks walks a document tree and collects every taskItem node.
// The item's text is the flattened text of its paragraph children; items
// with no text are skipped. The checked state comes from attrs.checked.
func ExtractTasks(doc map[string]interface{}) []ExtractedTask {
	var tasks []ExtractedTask
	walkTasks(doc, &tasks)
	return tasks
}

func walkTasks(node map[string]interface{}, tasks *[]ExtractedTask) {
	if node == nil {
		return
	}

	nodeType, _ := node["type"].(string)
	if nodeType == "taskItem" {
		content := strings.TrimSpace(flattenText(node))
		if content != "" {
			attrs, _ := node["attrs"].(map[string]interface{})
			checked, _ := attrs["checked"].(bool)
			id, _ := attrs["taskId"].(string)
			*tasks = append(*tasks, ExtractedTask{
				ID:        id,
				Content:   content,
				Completed: checked,
			})
		}
		// Nested task lists inside a task item still count.
	}

	children, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, child := range children {
		if childNode, ok := child.(map[string]interface{}); ok {
			walkTasks(childNode, tasks)
		}
	}
}

// flattenText concatenates the text of every text node under the given
// node, excluding nested task items so a parent task does not absorb the
// text of its subtasks.
func flattenText(node map[string]interface{}) string {
	var builder strings.Builder
	children, _ := node["content"].([]interface{})
	for _, child := range children {
		if childNode, ok := child.(map[string]interface{}); ok {
			collectText(childNode, &builder, true)
		}
	}
	return builder.String()
}

func collectText(node map[string]interface{}, builder *strings.Builder, skipTasks bool) {
	nodeType, _ := node["type"].(string)
	if skipTasks && (nodeType == "taskItem" || nodeType == "taskList") {
		return
	}
	if nodeType == "text" {
		text, _ := node["text"].(string)
		builder.WriteString(text)
		return
	}

	children, ok := node["content"].([]interface{})
	if !ok {
		return
	}
	for _, child := range children {
		if childNode, ok := child.(map[string]interface{}); ok {
			collectText(childNode, builder, skipTasks)
		}
	}

	// Keep adjacent blocks from running their words together.
	switch nodeType {
	case "paragraph", "heading", "codeBlock":
		builder.WriteString(" ")
	}
}
