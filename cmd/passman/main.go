package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/maynagashev/passman/internal/tui"
)

const (
	logDir             = "logs"
	logFileName        = "passman.log"
	logFilePermissions = 0666
	// Имена переменных окружения.
	serverURLEnvVar = "PASSMAN_SERVER_URL"
	credsPathEnvVar = "PASSMAN_CREDS_PATH"
	// Значения по умолчанию.
	defaultServerURL = "http://localhost:8080"
	defaultCredsPath = ".passman-creds.json"
)

// Переменные для версии и даты сборки, устанавливаются через ldflags.
var (
	version = "dev"
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	buildDate = "unknown"
	//nolint:gochecknoglobals // Устанавливается через ldflags при сборке
	commitHash = "N/A"
)

// setupLogging настраивает логирование в файл logs/passman.log.
// Писать логи в stdout нельзя: его занимает TUI.
func setupLogging() {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		panic("Не удалось создать директорию для логов: " + err.Error())
	}
	logPath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions)
	if err != nil {
		panic("Не удалось открыть лог-файл: " + err.Error())
	}
	// Файл остается открытым на время работы приложения, его закроет ОС
	// при завершении процесса.
	logHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)
}

// resolveSetting выбирает значение параметра: явно переданный флаг имеет
// приоритет над переменной окружения, та — над значением по умолчанию.
func resolveSetting(flagName, flagValue, envVar, defaultValue string) (string, string) {
	value := defaultValue
	source := "по умолчанию"
	if envValue := os.Getenv(envVar); envValue != "" {
		value = envValue
		source = "переменная окружения (" + envVar + ")"
	}
	flagPresent := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == flagName {
			flagPresent = true
		}
	})
	if flagPresent {
		value = flagValue
		source = "флаг -" + flagName
	}
	return value, source
}

func main() {
	versionFlag := flag.Bool("version", false, "Показать версию и дату сборки")

	setupLogging()

	serverURLFlag := flag.String("server-url", defaultServerURL,
		"URL сервера PassMan (переопределяет "+serverURLEnvVar+")")
	credsPathFlag := flag.String("creds", defaultCredsPath,
		"Путь к файлу учетных данных (переопределяет "+credsPathEnvVar+")")
	debugModeFlag := flag.Bool("debug", false, "Включить режим отладки TUI")

	flag.Parse()

	if *versionFlag {
		// Используем стандартный log для вывода в консоль, так как slog настроен на файл
		log.SetOutput(os.Stdout)
		log.SetFlags(0)
		log.Println("PassMan Client")
		log.Printf("Version: %s", version)
		log.Printf("Build Date: %s", buildDate)
		log.Printf("Commit Hash: %s", commitHash)
		os.Exit(0)
	}

	serverURL, serverSource := resolveSetting("server-url", *serverURLFlag, serverURLEnvVar, defaultServerURL)
	credsPath, credsSource := resolveSetting("creds", *credsPathFlag, credsPathEnvVar, defaultCredsPath)

	if serverURL == "" {
		slog.Error(
			"URL сервера не может быть пустым",
			"проверьте", "флаг -server-url и переменную окружения "+serverURLEnvVar,
		)
		os.Exit(1)
	}

	slog.Info("Запуск PassMan",
		"server_url", serverURL,
		"server_source", serverSource,
		"creds_path", credsPath,
		"creds_source", credsSource,
		"debug_mode", *debugModeFlag,
	)

	if err := tui.Start(tui.Config{
		ServerURL: serverURL,
		CredsPath: credsPath,
		DebugMode: *debugModeFlag,
	}); err != nil {
		slog.Error("Приложение завершилось с ошибкой", "error", err)
		os.Exit(1)
	}
}
