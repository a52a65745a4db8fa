package pgdesk

// Command names for the single-endpoint router. These mirror the message
// protocol spoken by UI clients: each request selects a command, each reply
// envelope names the reply command it answers with.
const (
	CommandTestConnection       = "testConnection"
	CommandSaveConnection       = "saveConnection"
	CommandListConnections      = "listConnections"
	CommandDeleteConnection     = "deleteConnection"
	CommandConnect              = "connect"
	CommandDisconnect           = "disconnect"
	CommandListSchemas          = "listSchemas"
	CommandListTables           = "listTables"
	CommandTableInfo            = "tableInfo"
	CommandBrowseRows           = "browseRows"
	CommandExecuteChanges       = "executeChanges"
	CommandExecuteSchemaChanges = "executeSchemaChanges"
	CommandDropTableExecute     = "dropTableExecute"
	CommandImportCSV            = "importCsv"
	CommandExportCSV            = "exportCsv"
	CommandHealthz              = "healthz"
	CommandReadyz               = "readyz"
)

// Reply command names carried in response envelopes.
const (
	ReplyTestResult        = "testResult"
	ReplySaveResult        = "saveResult"
	ReplyExecutionComplete = "executionComplete"
)
