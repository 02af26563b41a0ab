package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ufops/cmd"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	docsDir := "./docs"

	// 既存のdocsディレクトリをクリーン
	if err := os.RemoveAll(docsDir); err != nil {
		log.Fatalf("Failed to clean docs directory: %v", err)
	}
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		log.Fatalf("Failed to create docs directory: %v", err)
	}

	// ルートコマンドはdocs/README.mdとして生成
	if err := genSingleMarkdown(cmd.RootCmd, filepath.Join(docsDir, "README.md")); err != nil {
		log.Fatalf("Failed to generate root documentation: %v", err)
	}

	// サブコマンドをサービスごとにグループ化して1ファイルにまとめる
	fileCount := 1
	for _, subCmd := range cmd.RootCmd.Commands() {
		if !subCmd.IsAvailableCommand() || subCmd.IsAdditionalHelpTopicCommand() {
			continue
		}

		commands := []*cobra.Command{subCmd}
		for _, childCmd := range subCmd.Commands() {
			if childCmd.IsAvailableCommand() && !childCmd.IsAdditionalHelpTopicCommand() {
				commands = append(commands, childCmd)
			}
		}

		filename := filepath.Join(docsDir, fmt.Sprintf("%s.md", subCmd.Name()))
		if err := genServiceMarkdown(subCmd.Name(), commands, filename); err != nil {
			log.Printf("Failed to generate documentation for %s: %v", subCmd.Name(), err)
			continue
		}
		fileCount++
	}

	fmt.Printf("✅ Documentation generated in %s (%d files)\n", docsDir, fileCount)
}

// customLinkHandler はドキュメント内のリンクをカスタマイズ
func customLinkHandler(name string) string {
	// ufops -> README
	if name == cmd.AppName {
		return "README"
	}

	// ufops_cf_recover -> cf#ufops-cf-recover
	// ufops_cf -> cf
	parts := strings.Split(name, "_")
	if len(parts) >= 2 && parts[0] == cmd.AppName {
		if len(parts) > 2 {
			return parts[1] + "#" + strings.ReplaceAll(name, "_", "-")
		}
		return parts[1]
	}
	return name
}

// genSingleMarkdown は単一のコマンドのドキュメントを生成
func genSingleMarkdown(c *cobra.Command, filename string) error {
	buf := new(bytes.Buffer)
	if err := doc.GenMarkdownCustom(c, buf, customLinkHandler); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(fixMarkdownLinks(buf.String())), 0644)
}

// genServiceMarkdown はサービスの全コマンドを1つのファイルにまとめて生成
func genServiceMarkdown(serviceName string, commands []*cobra.Command, filename string) error {
	var content strings.Builder

	content.WriteString(fmt.Sprintf("# %s Commands\n\n", serviceName))
	content.WriteString("## Table of Contents\n\n")
	for _, c := range commands {
		cmdPath := c.CommandPath()
		content.WriteString(fmt.Sprintf("- [%s](#%s)\n", cmdPath, strings.ReplaceAll(cmdPath, " ", "-")))
	}
	content.WriteString("\n---\n\n")

	for _, c := range commands {
		buf := new(bytes.Buffer)
		if err := doc.GenMarkdownCustom(c, buf, customLinkHandler); err != nil {
			return fmt.Errorf("failed to generate markdown for %s: %w", c.CommandPath(), err)
		}
		content.WriteString(fixMarkdownLinks(buf.String()))
		content.WriteString("\n---\n\n")
	}

	return os.WriteFile(filename, []byte(content.String()), 0644)
}

// fixMarkdownLinks はMarkdown内のリンクを修正
func fixMarkdownLinks(content string) string {
	content = strings.ReplaceAll(content, "("+cmd.AppName+".md)", "(README.md)")

	// cf#ufops-cf-recover.md -> cf.md#ufops-cf-recover
	re := regexp.MustCompile(`\((\w+)#([\w-]+)\.md\)`)
	return re.ReplaceAllString(content, "($1.md#$2)")
}
