package open

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ChatLine returns the 1-based line of chatKey's message list in an archive
// file written by archive.Save. With seq >= 0 it returns the line of that
// message's "from" field instead.
func ChatLine(data []byte, chatKey string, seq int) (int, error) {
	var quoted bytes.Buffer
	enc := json.NewEncoder(&quoted)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(chatKey); err != nil {
		return 0, err
	}
	header := strings.TrimSpace(quoted.String()) + ": ["

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	inChats := false
	chatLine := 0
	msgIdx := -1
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		switch {
		case chatLine == 0 && !inChats:
			inChats = strings.HasPrefix(line, `"chats": {`)
		case chatLine == 0:
			if strings.HasPrefix(line, header) {
				chatLine = lineNum
				if seq < 0 {
					return chatLine, nil
				}
			}
		default:
			if line == "]" || line == "]," {
				return chatLine, nil // seq past the end
			}
			if strings.HasPrefix(line, `"from":`) {
				msgIdx++
				if msgIdx == seq {
					return lineNum, nil
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if chatLine == 0 {
		return 0, fmt.Errorf("chat not found in archive: %s", chatKey)
	}
	return chatLine, nil
}

// OpenChat opens the archive at path in $EDITOR, positioned on chatKey.
func OpenChat(path, chatKey string, seq int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	lineNum, err := ChatLine(data, chatKey, seq)
	if err != nil {
		return err
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}
	return openInEditor(editor, path, lineNum)
}

func editorCommand(editor, filePath string, lineNum int) *exec.Cmd {
	switch {
	case strings.Contains(editor, "vim") || strings.Contains(editor, "nvim"):
		return exec.Command(editor, fmt.Sprintf("+%d", lineNum), filePath)
	case strings.Contains(editor, "code"):
		return exec.Command(editor, "--goto", filePath+":"+strconv.Itoa(lineNum))
	case strings.Contains(editor, "less"):
		return exec.Command(editor, "+"+strconv.Itoa(lineNum), filePath)
	default:
		return exec.Command(editor, filePath)
	}
}

func openInEditor(editor, filePath string, lineNum int) error {
	cmd := editorCommand(editor, filePath, lineNum)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
