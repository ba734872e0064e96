package generation

import "fmt"

// Kind discriminates which prompt/config branch handles a request.
// The set is closed: ParseKind rejects anything not declared here, and a
// package test asserts the builder table covers every declared kind.
type Kind string

const (
	KindStandard           Kind = "standard"
	KindAstrology          Kind = "astrology"
	KindBookPlan           Kind = "book_plan"
	KindSingleChapter      Kind = "single_chapter"
	KindFileTask           Kind = "file_task"
	KindScienceFileTask    Kind = "science_file_task"
	KindCreativeFileTask   Kind = "creative_file_task"
	KindDocAnalysis        Kind = "doc_analysis"
	KindSWOT               Kind = "swot"
	KindCommercialProposal Kind = "commercial_proposal"
	KindBusinessPlan       Kind = "business_plan"
	KindBusinessSection    Kind = "business_section"
	KindMarketingCopy      Kind = "marketing_copy"
	KindRewrite            Kind = "rewrite"
	KindAudioScript        Kind = "audio_script"
	KindArticlePlan        Kind = "article_plan"
	KindGrantPlan          Kind = "grant_plan"
	KindArticleSection     Kind = "article_section"
	KindFullThesis         Kind = "full_thesis"
	KindCodeAnalysis       Kind = "code_analysis"
	KindCodeGenerate       Kind = "code_generate"
	KindPersonalAnalysis   Kind = "personal_analysis"
	KindAnalysis           Kind = "analysis"
	KindForecasting        Kind = "forecasting"
	KindMermaidToTable     Kind = "mermaid_to_table"
)

// AllKinds returns every declared request kind. The order matches the
// declaration order above.
func AllKinds() []Kind {
	return []Kind{
		KindStandard,
		KindAstrology,
		KindBookPlan,
		KindSingleChapter,
		KindFileTask,
		KindScienceFileTask,
		KindCreativeFileTask,
		KindDocAnalysis,
		KindSWOT,
		KindCommercialProposal,
		KindBusinessPlan,
		KindBusinessSection,
		KindMarketingCopy,
		KindRewrite,
		KindAudioScript,
		KindArticlePlan,
		KindGrantPlan,
		KindArticleSection,
		KindFullThesis,
		KindCodeAnalysis,
		KindCodeGenerate,
		KindPersonalAnalysis,
		KindAnalysis,
		KindForecasting,
		KindMermaidToTable,
	}
}

// ParseKind validates a wire-level type string against the closed kind set.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, known := range AllKinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, s)
}
