package ai

// ExtractPaperSystemPrompt frames every extraction request.
const ExtractPaperSystemPrompt = `You are an AI researcher building a knowledge graph of research papers. You read paper excerpts and return the entities and semantic relationships they describe as strict JSON.`

// ExtractPaperPrompt is formatted with the paper label and the (already
// truncated) paper text.
const ExtractPaperPrompt = `
# Background Data
Excerpt from "%s":

%s

# Detailed Task Description & Rules
1. Reasoning
- Identify the core contribution of this paper.
- Identify the specific methods it improves on or compares against.
- Scan for architectural components (e.g. "MLP", "Voxel Grid", "Spherical Harmonics").

2. Entities (nodes)
- Extract papers, methods, concepts, metrics and authors.
- Use canonical names: "3D Gaussian Splatting" instead of "3DGS" or "Our Method".
- type is one of: Paper, Concept, Metric, Author, Method.
- description is a brief definition and may be empty.

3. Relationships (edges)
- Connect entities with one of: IMPROVES_ON, INTRODUCES, USES, EVALUATED_ON, ALTERNATIVE_TO.
- Do not extract a citation only because it is listed. Extract it when the text describes a relationship (e.g. "We outperform X by 10%%").
- context is the verbatim sentence from the text that supports the relationship.

4. Verification
- Every source and target must match the name of an entity in your nodes list exactly.

# Immediate Task Description or Request
Return a JSON object with the keys "nodes" and "edges".
`
