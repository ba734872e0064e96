package generation

import (
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// ExtractFunc converts an uploaded file to plain text. Implementations must
// return empty text (not an error) for unsupported formats; errors are
// treated as recoverable and absorbed into an empty-text fallback.
type ExtractFunc func(name, mimeType string, data []byte) (string, error)

// BuildOutput is everything the dispatcher needs for one backend call: the
// prompt (or multi-part content when attachments are present), the resolved
// document type for persona selection, an optional structured-output schema
// and the web-search flag. For the composite document kind, Sections carries
// the declared section list instead and no single prompt is produced.
type BuildOutput struct {
	Prompt       string
	Parts        []*genai.Part
	DocType      string
	Schema       *genai.Schema
	EnableSearch bool
	Sections     []Section
}

// Composite reports whether this request is assembled by the multi-section
// pipeline rather than a single dispatcher call.
func (o *BuildOutput) Composite() bool {
	return o.Sections != nil
}

// Builder translates (kind, payload) pairs into prompts and generation
// config. It is stateless; the injected extractor is only used by the kinds
// that fold file content into the prompt text.
type Builder struct {
	extract ExtractFunc
	logger  *slog.Logger
}

// NewBuilder creates a Builder with the given file extractor.
func NewBuilder(extract ExtractFunc, logger *slog.Logger) *Builder {
	return &Builder{extract: extract, logger: logger}
}

type builderFunc func(b *Builder, p Payload) (*BuildOutput, error)

// builders is the closed dispatch table. Every Kind declared in kinds.go must
// have an entry; TestBuilderTableIsExhaustive enforces that.
var builders = map[Kind]builderFunc{
	KindStandard:           (*Builder).buildStandard,
	KindAstrology:          (*Builder).buildAstrology,
	KindBookPlan:           (*Builder).buildBookPlan,
	KindSingleChapter:      (*Builder).buildSingleChapter,
	KindFileTask:           (*Builder).buildFileTask,
	KindScienceFileTask:    (*Builder).buildScienceFileTask,
	KindCreativeFileTask:   (*Builder).buildCreativeFileTask,
	KindDocAnalysis:        (*Builder).buildDocAnalysis,
	KindSWOT:               (*Builder).buildSWOT,
	KindCommercialProposal: (*Builder).buildCommercialProposal,
	KindBusinessPlan:       (*Builder).buildBusinessPlan,
	KindBusinessSection:    (*Builder).buildBusinessSection,
	KindMarketingCopy:      (*Builder).buildMarketingCopy,
	KindRewrite:            (*Builder).buildRewrite,
	KindAudioScript:        (*Builder).buildAudioScript,
	KindArticlePlan:        (*Builder).buildArticlePlan,
	KindGrantPlan:          (*Builder).buildGrantPlan,
	KindArticleSection:     (*Builder).buildArticleSection,
	KindFullThesis:         (*Builder).buildFullThesis,
	KindCodeAnalysis:       (*Builder).buildCodeAnalysis,
	KindCodeGenerate:       (*Builder).buildCodeGenerate,
	KindPersonalAnalysis:   (*Builder).buildPersonalAnalysis,
	KindAnalysis:           (*Builder).buildAnalysis,
	KindForecasting:        (*Builder).buildForecasting,
	KindMermaidToTable:     (*Builder).buildMermaidToTable,
}

// Build dispatches to the kind-specific branch and applies the common
// post-processing: defaulting the document type from the payload and turning
// attachments into a text-plus-inline-data parts list.
func (b *Builder) Build(kind Kind, p Payload) (*BuildOutput, error) {
	fn, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, kind)
	}
	out, err := fn(b, p)
	if err != nil {
		return nil, err
	}
	if out.DocType == "" {
		out.DocType = p.str("docType")
	}
	if out.Composite() {
		return out, nil
	}

	// Attachments ride along as inline binary parts after the prompt text,
	// with their declared media type untouched. The file-task kinds have no
	// template of their own beyond payload.prompt, hence the fallback.
	if files := p.files(); len(files) > 0 {
		prompt := out.Prompt
		if prompt == "" {
			prompt = p.str("prompt")
		}
		parts := []*genai.Part{genai.NewPartFromText(prompt)}
		for _, f := range files {
			data, err := f.Bytes()
			if err != nil {
				return nil, err
			}
			parts = append(parts, genai.NewPartFromBytes(data, f.MimeType))
		}
		out.Parts = parts
	}
	return out, nil
}

// planSchema is the shared structured-plan shape: a titled plan with an
// ordered list of sub-items, each carrying a title, description and a
// follow-up generation prompt. Only the name of the list property differs
// between the plan kinds.
func planSchema(itemsKey string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString},
			itemsKey: {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":            {Type: genai.TypeString},
						"description":      {Type: genai.TypeString},
						"generationPrompt": {Type: genai.TypeString},
					},
					Required: []string{"title", "description", "generationPrompt"},
				},
			},
		},
		Required: []string{"title", itemsKey},
	}
}

func codeAnalysisSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"plan":       {Type: genai.TypeString},
			"complexity": {Type: genai.TypeString},
			"cost":       {Type: genai.TypeInteger},
		},
		Required: []string{"plan", "complexity", "cost"},
	}
}

func (b *Builder) buildStandard(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Сгенерируй %s для %d-летнего ученика на тему: "%s". Ответ должен быть структурированным, с заголовками и абзацами.`,
		strings.ToLower(p.str("docType")), p.num("age"), p.str("topic"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildAstrology(p Payload) (*BuildOutput, error) {
	var prompt string
	if p.boolean("horoscope") {
		prompt = fmt.Sprintf(
			`Составь гороскоп на сегодняшний день, текущий месяц и текущий год для человека, родившегося %s.`,
			p.str("date"))
	} else {
		prompt = fmt.Sprintf(
			`Составь подробную натальную карту для человека, родившегося %s в %s в городе %s. Дай детальный разбор по домам, планетам и ключевым аспектам.`,
			p.str("date"), p.str("time"), p.str("place"))
	}
	return &BuildOutput{Prompt: prompt, DocType: DocTypeAstrology}, nil
}

func (b *Builder) buildBookPlan(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Создай детальный план для книги в жанре %s и стиле %s. Книга рассчитана на читателя возраста %s. В книге должно быть %d глав. Пользователь дал следующие пожелания: "%s". Для каждой главы придумай название, краткое описание и детальный промпт для последующей генерации текста этой главы.`,
		p.str("genre"), p.str("style"), p.str("readerAge"), p.num("chaptersCount"), p.str("userPrompt"))
	return &BuildOutput{
		Prompt:  prompt,
		DocType: DocTypeBookWriting,
		Schema:  planSchema("chapters"),
	}, nil
}

func (b *Builder) buildSingleChapter(p Payload) (*BuildOutput, error) {
	var chapter PlanItem
	if err := p.decode("chapter", &chapter); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		`Напиши текст для главы "%s" книги "%s" в жанре %s и стиле %s для читателя %s лет. Используй следующий детальный промпт: "%s". Предоставь только текст главы, без заголовков и комментариев.`,
		chapter.Title, p.str("bookTitle"), p.str("genre"), p.str("style"), p.str("readerAge"), chapter.GenerationPrompt)
	return &BuildOutput{Prompt: prompt, DocType: DocTypeBookWriting}, nil
}

func (b *Builder) buildFileTask(p Payload) (*BuildOutput, error) {
	extra := ""
	if userPrompt := p.str("prompt"); userPrompt != "" {
		extra = fmt.Sprintf(`Дополнительные инструкции от пользователя: "%s"`, userPrompt)
	}
	prompt := fmt.Sprintf(
		`Реши задачу из приложенных файлов. %s. Ответ должен быть полным и развернутым решением.`, extra)
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildScienceFileTask(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Выполни научную задачу на основе приложенных файлов. Запрос пользователя: "%s".`, p.str("prompt"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildCreativeFileTask(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		"Проанализируй творческую работу.\nТекст от пользователя: %s\nДополнительные файлы приложены.\nЗапрос пользователя: \"%s\"",
		p.str("text"), p.str("prompt"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildDocAnalysis(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Проанализируй приложенные документы. Запрос пользователя: "%s".`, p.str("prompt"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildSWOT(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Проведи SWOT-анализ для: "%s". Представь результат в виде Mermaid диаграммы с 4 подграфами: Strengths, Weaknesses, Opportunities, Threats. После диаграммы дай текстовое пояснение для каждого пункта.`,
		p.str("description"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildCommercialProposal(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Напиши коммерческое предложение. Продукт: %s. Клиент: %s. Цели: %s.`,
		p.str("product"), p.str("client"), p.str("goals"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildBusinessPlan(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Создай детальный план для бизнес-плана. Идея: %s. Отрасль: %s. Количество разделов: %d.`,
		p.str("idea"), p.str("industry"), p.num("sectionsCount"))
	return &BuildOutput{Prompt: prompt, Schema: planSchema("sections")}, nil
}

func (b *Builder) buildBusinessSection(p Payload) (*BuildOutput, error) {
	var section PlanItem
	if err := p.decode("section", &section); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		`Напиши текст для раздела "%s" бизнес-плана "%s" в отрасли "%s". Детальный промпт: "%s"`,
		section.Title, p.str("planTitle"), p.str("industry"), section.GenerationPrompt)
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildMarketingCopy(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Создай маркетинговый текст. Тип: %s. Продукт: %s. Аудитория: %s. Тональность: %s. Детали: %s.`,
		p.str("copyType"), p.str("product"), p.str("audience"), p.str("tone"), p.str("details"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildRewrite(p Payload) (*BuildOutput, error) {
	base := fmt.Sprintf(`Переработай следующий текст: "%s".`, p.str("originalText"))
	if p.file("file") != nil {
		base = `Проанализируй изображение в файле.`
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `%s Цель: %s.`, base, p.str("goal"))
	if style := p.str("style"); style != "" {
		fmt.Fprintf(&sb, ` Новый стиль: %s.`, style)
	}
	if instructions := p.str("instructions"); instructions != "" {
		fmt.Fprintf(&sb, ` Дополнительные инструкции: %s`, instructions)
	}
	return &BuildOutput{Prompt: sb.String()}, nil
}

func (b *Builder) buildAudioScript(p Payload) (*BuildOutput, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Напиши аудио-сценарий. Тема: "%s". Длительность: %d минут. Формат: %s. Жанр/Тип: %s. Голос 1: %s.`,
		p.str("topic"), p.num("duration"), p.str("format"), p.str("type"), p.str("voice1"))
	if voice2 := p.str("voice2"); voice2 != "" {
		fmt.Fprintf(&sb, ` Голос 2: %s`, voice2)
	}
	return &BuildOutput{Prompt: sb.String()}, nil
}

func (b *Builder) buildArticlePlan(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Создай план научной статьи. Тема: %s. Гипотеза: %s. Область: %s. Разделов: %d.`,
		p.str("topic"), p.str("hypothesis"), p.str("field"), p.num("sectionsCount"))
	return &BuildOutput{Prompt: prompt, Schema: planSchema("sections")}, nil
}

func (b *Builder) buildGrantPlan(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Создай структуру для грантовой заявки. Проект: "%s". Цель: "%s". Область: "%s". Разделов: %d.`,
		p.str("topic"), p.str("hypothesis"), p.str("field"), p.num("sectionsCount"))
	if f := p.file("file"); f != nil {
		text := b.extractOrEmpty(*f)
		prompt += fmt.Sprintf("\n\nУчти структуру из приложенного файла с формой заявки:\n%s", text)
	}
	return &BuildOutput{Prompt: prompt, Schema: planSchema("sections")}, nil
}

func (b *Builder) buildArticleSection(p Payload) (*BuildOutput, error) {
	var section PlanItem
	if err := p.decode("section", &section); err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(
		`Напиши текст для раздела "%s" научной статьи "%s" в области "%s". Детальный промпт: "%s"`,
		section.Title, p.str("planTitle"), p.str("field"), section.GenerationPrompt)
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildFullThesis(p Payload) (*BuildOutput, error) {
	var sections []Section
	if err := p.decode("sections", &sections); err != nil {
		return nil, err
	}
	return &BuildOutput{DocType: DocTypeThesis, Sections: sections}, nil
}

func (b *Builder) buildCodeAnalysis(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Проанализируй задачу по программированию. Язык: %s. Задача: "%s". Дай план реализации, оценку сложности (Легкая, Средняя, Сложная) и примерную стоимость в генерациях (1-5).`,
		p.str("language"), p.str("taskDescription"))
	return &BuildOutput{Prompt: prompt, Schema: codeAnalysisSchema()}, nil
}

func (b *Builder) buildCodeGenerate(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		`Напиши код на %s. Задача: "%s". Предоставь только код с краткими комментариями, без лишних пояснений.`,
		p.str("language"), p.str("taskDescription"))
	return &BuildOutput{Prompt: prompt}, nil
}

func (b *Builder) buildPersonalAnalysis(p Payload) (*BuildOutput, error) {
	subject := "женщины"
	if p.str("gender") == "male" {
		subject = "мужчины"
	}
	prompt := fmt.Sprintf(`Проведи личностный анализ для %s. Запрос: "%s".`, subject, p.str("userPrompt"))
	return &BuildOutput{Prompt: prompt}, nil
}

// buildAnalysis has no template of its own: the user prompt is passed through
// verbatim and web search is enabled only when the caller asked for grounding.
func (b *Builder) buildAnalysis(p Payload) (*BuildOutput, error) {
	return &BuildOutput{
		Prompt:       p.str("prompt"),
		EnableSearch: p.boolean("isGrounded"),
	}, nil
}

func (b *Builder) buildForecasting(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(`Сделай прогноз по запросу: "%s"`, p.str("prompt"))
	return &BuildOutput{Prompt: prompt, EnableSearch: true}, nil
}

func (b *Builder) buildMermaidToTable(p Payload) (*BuildOutput, error) {
	prompt := fmt.Sprintf(
		"Преобразуй следующий неработающий Mermaid.js код в таблицу формата Markdown. Извлеки все узлы, связи и данные и представь их в виде понятной таблицы.\n\nКод:\n%smermaid\n%s\n%s",
		fence, p.str("brokenCode"), fence)
	return &BuildOutput{Prompt: prompt}, nil
}

// extractOrEmpty runs the injected extractor and absorbs failures into empty
// text so one unreadable attachment cannot fail the whole request.
func (b *Builder) extractOrEmpty(f File) string {
	data, err := f.Bytes()
	if err != nil {
		b.logger.Warn("attachment decode failed, continuing without it", "file", f.Name, "error", err)
		return ""
	}
	text, err := b.extract(f.Name, f.MimeType, data)
	if err != nil {
		b.logger.Warn("attachment extraction failed, continuing without it",
			"file", f.Name, "error", fmt.Errorf("%w: %v", ErrExtractionFailure, err))
		return ""
	}
	return text
}
