package tools

import "fmt"

// MessageID names a canned tool result.
type MessageID string

const (
	MsgLanguageChanged  MessageID = "language_changed"
	MsgLanguageRejected MessageID = "language_rejected"
	MsgLanguageCurrent  MessageID = "language_current"

	MsgInstallOK          MessageID = "install_ok"
	MsgInstallFailed      MessageID = "install_failed"
	MsgCommandUnavailable MessageID = "command_unavailable"
	MsgUpdateOK           MessageID = "update_ok"
	MsgUpdateFailed       MessageID = "update_failed"

	MsgSystemInfoReady     MessageID = "system_info_ready"
	MsgSystemInfoSummary   MessageID = "system_info_summary"
	MsgSystemInfoFailed    MessageID = "system_info_failed"
	MsgNeofetchUnavailable MessageID = "neofetch_unavailable"
	MsgMemoryUsage         MessageID = "memory_usage"
	MsgMemoryFailed        MessageID = "memory_failed"
	MsgWifiFound           MessageID = "wifi_found"
	MsgWifiFailed          MessageID = "wifi_failed"
	MsgWifiUnavailable     MessageID = "wifi_unavailable"

	MsgVolumeOutOfRange MessageID = "volume_out_of_range"
	MsgVolumeSet        MessageID = "volume_set"
	MsgVolumeFailed     MessageID = "volume_failed"

	MsgProcessKilled   MessageID = "process_killed"
	MsgProcessNotFound MessageID = "process_not_found"
	MsgAppOpened       MessageID = "app_opened"
	MsgAppFailed       MessageID = "app_failed"

	MsgUnknownTool      MessageID = "unknown_tool"
	MsgInvalidArguments MessageID = "invalid_arguments"
	MsgInternal         MessageID = "internal"
)

// Catalog maps message ids to format strings for one locale.
type Catalog struct {
	Locale   string
	messages map[MessageID]string
}

// Render formats id with params. Unknown ids render as the id itself so a
// missing translation never turns into an empty answer.
func (c Catalog) Render(id MessageID, params ...any) string {
	format, ok := c.messages[id]
	if !ok {
		return string(id)
	}
	if len(params) == 0 {
		return format
	}
	return fmt.Sprintf(format, params...)
}

// Has reports whether the catalog carries a rendering for id.
func (c Catalog) Has(id MessageID) bool {
	_, ok := c.messages[id]
	return ok
}

// AllMessageIDs lists every id a catalog must translate.
func AllMessageIDs() []MessageID {
	return []MessageID{
		MsgLanguageChanged, MsgLanguageRejected, MsgLanguageCurrent,
		MsgInstallOK, MsgInstallFailed, MsgCommandUnavailable, MsgUpdateOK, MsgUpdateFailed,
		MsgSystemInfoReady, MsgSystemInfoSummary, MsgSystemInfoFailed, MsgNeofetchUnavailable,
		MsgMemoryUsage, MsgMemoryFailed, MsgWifiFound, MsgWifiFailed, MsgWifiUnavailable,
		MsgVolumeOutOfRange, MsgVolumeSet, MsgVolumeFailed,
		MsgProcessKilled, MsgProcessNotFound, MsgAppOpened, MsgAppFailed,
		MsgUnknownTool, MsgInvalidArguments, MsgInternal,
	}
}

// Hinglish is the catalog used by the Hindi speaking assistant.
var Hinglish = Catalog{
	Locale: "hi",
	messages: map[MessageID]string{
		MsgLanguageChanged:  "STT भाषा %s (%s) set हो गई",
		MsgLanguageRejected: "%s supported नहीं है। Valid codes: %s",
		MsgLanguageCurrent:  "अभी STT भाषा %s (%s) है",

		MsgInstallOK:          "%s install हो गया",
		MsgInstallFailed:      "Install में error आया",
		MsgCommandUnavailable: "Command execute नहीं हो सका",
		MsgUpdateOK:           "System update हो गया",
		MsgUpdateFailed:       "Update में error आया",

		MsgSystemInfoReady:     "System info ready",
		MsgSystemInfoSummary:   "System info ready: %s",
		MsgSystemInfoFailed:    "Info नहीं मिली",
		MsgNeofetchUnavailable: "Neofetch available नहीं है",
		MsgMemoryUsage:         "Memory: %s/%s used",
		MsgMemoryFailed:        "Memory check नहीं हो सका",
		MsgWifiFound:           "WiFi networks मिल गए (%d)",
		MsgWifiFailed:          "WiFi scan नहीं हो सका",
		MsgWifiUnavailable:     "NetworkManager available नहीं है",

		MsgVolumeOutOfRange: "Volume 0-100 के बीच होना चाहिए",
		MsgVolumeSet:        "Volume %d%% set हो गया",
		MsgVolumeFailed:     "Volume set नहीं हो सका",

		MsgProcessKilled:   "%s process बंद हो गई",
		MsgProcessNotFound: "%s process नहीं मिली",
		MsgAppOpened:       "%s खुल गया",
		MsgAppFailed:       "%s नहीं खुला",

		MsgUnknownTool:      "%s नाम का कोई tool नहीं है",
		MsgInvalidArguments: "Tool arguments गलत हैं: %s",
		MsgInternal:         "कुछ गड़बड़ हो गई, फिर से try करें",
	},
}

// English is the catalog used by the English speaking assistant.
var English = Catalog{
	Locale: "en",
	messages: map[MessageID]string{
		MsgLanguageChanged:  "Speech recognition language set to %s (%s)",
		MsgLanguageRejected: "%s is not supported. Valid codes: %s",
		MsgLanguageCurrent:  "Speech recognition language is %s (%s)",

		MsgInstallOK:          "%s installed",
		MsgInstallFailed:      "Install failed",
		MsgCommandUnavailable: "Command could not be executed",
		MsgUpdateOK:           "System updated",
		MsgUpdateFailed:       "Update failed",

		MsgSystemInfoReady:     "System info ready",
		MsgSystemInfoSummary:   "System info ready: %s",
		MsgSystemInfoFailed:    "System info unavailable",
		MsgNeofetchUnavailable: "Neofetch is not available",
		MsgMemoryUsage:         "Memory: %s/%s used",
		MsgMemoryFailed:        "Memory check failed",
		MsgWifiFound:           "WiFi networks found (%d)",
		MsgWifiFailed:          "WiFi scan failed",
		MsgWifiUnavailable:     "NetworkManager is not available",

		MsgVolumeOutOfRange: "Volume must be between 0 and 100",
		MsgVolumeSet:        "Volume set to %d%%",
		MsgVolumeFailed:     "Could not set volume",

		MsgProcessKilled:   "%s process stopped",
		MsgProcessNotFound: "%s process not found",
		MsgAppOpened:       "%s opened",
		MsgAppFailed:       "%s did not open",

		MsgUnknownTool:      "No tool named %s",
		MsgInvalidArguments: "Invalid tool arguments: %s",
		MsgInternal:         "Something went wrong, please try again",
	},
}

// CatalogFor picks a catalog by locale, defaulting to English.
func CatalogFor(locale string) Catalog {
	if locale == Hinglish.Locale {
		return Hinglish
	}
	return English
}
