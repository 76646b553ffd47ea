package summarize

// Prompt templates. The optimizer asks for JSON so the improved query can be
// parsed out of the completion; the other two are free-form.

const queryOptimizerPrompt = `You are extremely good at context understanding and generating google search queries based on the understanding.
You are given a user query. Understand what the user wants and generate a perfect, extremely-well-structured google search query that will help the user find what he/she needs.

Generate just the query in JSON format. No extra text. Keys to include: "query".

The user query is following:
%s
`

const pageSummaryPrompt = `Summarize the following document: %s`

const finalSummaryPrompt = `User wants to know about %s.
And The following is a set of summaries on this topic:
%s

Now, if the query is an asked question then: Generate only an answer to the original query with some useful additional information.
Otherwise: Take these and distill it into a final, consolidated summary of the main themes.
`
