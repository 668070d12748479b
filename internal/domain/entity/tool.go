package entity

type ToolName string

const (
	ToolReadFile        ToolName = "read_file"
	ToolWriteFile       ToolName = "write_file"
	ToolCreateDirectory ToolName = "create_directory"
	ToolListFiles       ToolName = "list_files"
	ToolExecuteCommand  ToolName = "execute_command"
	ToolSearchCode      ToolName = "search_code"
)

func (t ToolName) String() string {
	return string(t)
}

// ToolDefinition is the prompt-facing description of a tool. Input documents
// the expected input string, including the ||| packing for compound inputs.
type ToolDefinition struct {
	Name        ToolName
	Description string
	Input       string
}
